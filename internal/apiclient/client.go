package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
)

// ServerError - ответ сервера с кодом не 2xx; Message берется из тела как есть
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Client - HTTP клиент к REST бэкенду посещаемости
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(baseURL, token string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type coordinatesRequest struct {
	Coordinates *geo.Position `json:"coordinates"`
}

type dtrResponse struct {
	DTR models.AttendanceRecord `json:"dtr"`
}

type safeZoneRequest struct {
	SafeZone      *geo.Geometry `json:"safeZone"`
	SafeZoneLabel string        `json:"safeZoneLabel,omitempty"`
}

// BroadcastLocation отправляет текущую точку; тело ответа игнорируется
func (c *Client) BroadcastLocation(ctx context.Context, at geo.AppCoordinate) error {
	return c.do(ctx, http.MethodPost, "/user/location", true, locationRequest{Lat: at.Lat, Lng: at.Lng}, nil)
}

// MyRecords возвращает все записи посещаемости текущего стажера
func (c *Client) MyRecords(ctx context.Context) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := c.do(ctx, http.MethodGet, "/dtr/my-records", true, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// TimeIn отмечает приход; координаты в порядке [lng, lat]
func (c *Client) TimeIn(ctx context.Context, at geo.Position) (*models.AttendanceRecord, error) {
	var resp dtrResponse
	if err := c.do(ctx, http.MethodPost, "/dtr/time-in", true, coordinatesRequest{Coordinates: &at}, &resp); err != nil {
		return nil, err
	}
	return &resp.DTR, nil
}

// TimeOut отмечает уход; at может быть nil, тогда уходит coordinates: null
func (c *Client) TimeOut(ctx context.Context, at *geo.Position) (*models.AttendanceRecord, error) {
	var resp dtrResponse
	if err := c.do(ctx, http.MethodPost, "/dtr/time-out", true, coordinatesRequest{Coordinates: at}, &resp); err != nil {
		return nil, err
	}
	return &resp.DTR, nil
}

// Company читает компанию без заголовка авторизации
func (c *Client) Company(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := c.do(ctx, http.MethodGet, "/company/"+id.String(), false, nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) Companies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := c.do(ctx, http.MethodGet, "/company", true, nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// CompanyStudents возвращает стажеров компании с последними точками
func (c *Client) CompanyStudents(ctx context.Context, id uuid.UUID) ([]models.TrackedSubject, error) {
	var subjects []models.TrackedSubject
	if err := c.do(ctx, http.MethodGet, "/company/"+id.String()+"/students", true, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// UpdateSafeZone сохраняет нарисованную зону; zone == nil удаляет ее
func (c *Client) UpdateSafeZone(ctx context.Context, id uuid.UUID, zone *geo.Geometry, label string) (*models.Company, error) {
	var company models.Company
	body := safeZoneRequest{SafeZone: zone, SafeZoneLabel: label}
	if err := c.do(ctx, http.MethodPut, "/company/"+id.String()+"/safe-zone", true, body, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &ServerError{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("Request rejected by server")
		return serverErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func errorMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(status)
}
