package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LatestLocation - последняя переданная стажером точка
type LatestLocation struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackedSubject - стажер в живом просмотре карты
type TrackedSubject struct {
	ID             uuid.UUID       `json:"_id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Avatar         string          `json:"avatar,omitempty"`
	Program        string          `json:"program,omitempty"`
	CompanyID      *uuid.UUID      `json:"company,omitempty"`
	LatestLocation *LatestLocation `json:"latestLocation,omitempty"`
}

func (s TrackedSubject) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
