package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

// DateLayout - формат поля date в записи посещаемости
const DateLayout = "2006-01-02"

// AttendanceRecord - запись посещаемости (DTR) стажера за день
type AttendanceRecord struct {
	ID              uuid.UUID     `json:"_id"`
	StudentID       uuid.UUID     `json:"student"`
	CompanyID       *uuid.UUID    `json:"company,omitempty"`
	Date            string        `json:"date"`
	TimeIn          *time.Time    `json:"timeIn"`
	TimeOut         *time.Time    `json:"timeOut"`
	TimeInLocation  *geo.Position `json:"timeInCoordinates,omitempty"`
	TimeOutLocation *geo.Position `json:"timeOutCoordinates,omitempty"`
	InsideZone      bool          `json:"insideZone"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// DateOf возвращает ключ дня для момента t в часовом поясе loc
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// FindForDate ищет запись за указанный день
func FindForDate(records []AttendanceRecord, date string) *AttendanceRecord {
	for i := range records {
		if records[i].Date == date {
			r := records[i]
			return &r
		}
	}
	return nil
}
