package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/ojt_tracker/internal/config"
	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/service"
	"github.com/shenikar/ojt_tracker/internal/service/mocks"
)

const testToken = "test-token"

var testStudentID = uuid.MustParse("7b1d2c3e-4f50-4a6b-8c7d-9e0f1a2b3c4d")

type handlerMocks struct {
	companies  *mocks.MockCompanyService
	attendance *mocks.MockAttendanceService
	locations  *mocks.MockLocationService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		companies:  mocks.NewMockCompanyService(ctrl),
		attendance: mocks.NewMockAttendanceService(ctrl),
		locations:  mocks.NewMockLocationService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APITokens: map[string]uuid.UUID{testToken: testStudentID},
	}

	handler := NewHandler(m.companies, m.attendance, m.locations, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

func testZone() *geo.Geometry {
	return geo.NewPolygonGeometry(geo.RectanglePolygon(geo.Bounds{South: 14.5895, West: 120.9742, North: 14.6095, East: 120.9942}))
}

func TestRecordLocation_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	recordedAt := time.Date(2026, time.October, 18, 1, 0, 0, 0, time.UTC)

	m.locations.EXPECT().
		RecordLocation(gomock.Any(), testStudentID, geo.AppCoordinate{Lat: 14.5995, Lng: 120.9842}).
		Return(&models.LocationPing{StudentID: testStudentID, Latitude: 14.5995, Longitude: 120.9842, RecordedAt: recordedAt}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/user/location", bytes.NewBufferString(`{"lat":14.5995,"lng":120.9842}`), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 14.5995, resp.Lat)
	assert.Equal(t, 120.9842, resp.Lng)
	assert.True(t, recordedAt.Equal(resp.Timestamp))
}

func TestRecordLocation_ValidationError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.locations.EXPECT().RecordLocation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	testCases := []struct {
		name     string
		body     string
		contains string
	}{
		{name: "missing lat", body: `{"lng":120.98}`, contains: "Error:Field validation for 'Lat' failed on the 'required' tag"},
		{name: "latitude out of range", body: `{"lat":95,"lng":120.98}`, contains: "Error:Field validation for 'Lat' failed on the 'latitude' tag"},
		{name: "longitude out of range", body: `{"lat":14.6,"lng":200}`, contains: "Error:Field validation for 'Lng' failed on the 'longitude' tag"},
		{name: "invalid json", body: `{"lat":`, contains: "invalid request body"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := makeRequest(router, "POST", "/api/v1/user/location", bytes.NewBufferString(tc.body), authHeader())
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.contains)
		})
	}
}

func TestRecordLocation_ZeroCoordinatesAreValid(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.locations.EXPECT().
		RecordLocation(gomock.Any(), testStudentID, geo.AppCoordinate{Lat: 0, Lng: 0}).
		Return(&models.LocationPing{StudentID: testStudentID}, nil)

	w := makeRequest(router, "POST", "/api/v1/user/location", bytes.NewBufferString(`{"lat":0,"lng":0}`), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecordLocation_Unauthorized(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/user/location", bytes.NewBufferString(`{"lat":14.6,"lng":120.98}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization required")
}

func TestMyRecords_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	timeIn := time.Date(2026, time.October, 18, 0, 30, 0, 0, time.UTC)
	records := []models.AttendanceRecord{{
		ID:             uuid.New(),
		StudentID:      testStudentID,
		Date:           "2026-10-18",
		TimeIn:         &timeIn,
		TimeInLocation: &geo.Position{Lng: 120.9842, Lat: 14.5995},
		InsideZone:     true,
	}}

	m.attendance.EXPECT().MyRecords(gomock.Any(), testStudentID).Return(records, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/dtr/my-records", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"timeInCoordinates":[120.9842,14.5995]`)
	var resp []models.AttendanceRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, records[0].ID, resp[0].ID)
	assert.Nil(t, resp[0].TimeOut)
}

func TestMyRecords_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.attendance.EXPECT().MyRecords(gomock.Any(), testStudentID).Return(nil, errors.New("db error"))

	w := makeRequest(router, "GET", "/api/v1/dtr/my-records", nil, authHeader())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestTimeIn_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	now := time.Date(2026, time.October, 18, 0, 30, 0, 0, time.UTC)
	at := &geo.Position{Lng: 120.9842, Lat: 14.5995}

	m.attendance.EXPECT().
		TimeIn(gomock.Any(), testStudentID, at).
		DoAndReturn(func(_ context.Context, studentID uuid.UUID, p *geo.Position) (*models.AttendanceRecord, error) {
			return &models.AttendanceRecord{ID: uuid.New(), StudentID: studentID, Date: "2026-10-18", TimeIn: &now, TimeInLocation: p, InsideZone: true}, nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/dtr/time-in", bytes.NewBufferString(`{"coordinates":[120.9842,14.5995]}`), authHeader())

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp DTRResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.DTR)
	assert.Equal(t, "2026-10-18", resp.DTR.Date)
	assert.Equal(t, at, resp.DTR.TimeInLocation)
}

func TestTimeIn_ServiceErrors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "outside zone", err: service.ErrOutsideZone, wantStatus: http.StatusForbidden, wantBody: `{"message":"you are outside the designated area"}`},
		{name: "already timed in", err: service.ErrAlreadyTimedIn, wantStatus: http.StatusConflict, wantBody: `{"message":"you have already timed in today"}`},
		{name: "invalid coordinates", err: service.ErrInvalidCoordinates, wantStatus: http.StatusBadRequest, wantBody: `{"message":"valid coordinates are required"}`},
		{name: "student not found", err: service.ErrStudentNotFound, wantStatus: http.StatusNotFound, wantBody: `{"message":"student not found"}`},
		{name: "unexpected", err: fmt.Errorf("service: %w", errors.New("db down")), wantStatus: http.StatusInternalServerError, wantBody: `{"message":"internal server error"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			m.attendance.EXPECT().TimeIn(gomock.Any(), testStudentID, gomock.Any()).Return(nil, tc.err)

			w := makeRequest(router, "POST", "/api/v1/dtr/time-in", bytes.NewBufferString(`{"coordinates":[121.5,15.0]}`), authHeader())

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestTimeIn_MalformedCoordinates(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.attendance.EXPECT().TimeIn(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/dtr/time-in", bytes.NewBufferString(`{"coordinates":[120.98]}`), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"invalid request body"}`, w.Body.String())
}

func TestTimeOut_NullCoordinates(t *testing.T) {
	_, m, router := newTestHandler(t)
	timeIn := time.Date(2026, time.October, 18, 0, 30, 0, 0, time.UTC)
	timeOut := timeIn.Add(8 * time.Hour)

	m.attendance.EXPECT().
		TimeOut(gomock.Any(), testStudentID, (*geo.Position)(nil)).
		Return(&models.AttendanceRecord{ID: uuid.New(), Date: "2026-10-18", TimeIn: &timeIn, TimeOut: &timeOut}, nil)

	w := makeRequest(router, "POST", "/api/v1/dtr/time-out", bytes.NewBufferString(`{"coordinates":null}`), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dtr"`)
}

func TestTimeOut_EmptyBody(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.attendance.EXPECT().TimeOut(gomock.Any(), testStudentID, (*geo.Position)(nil)).Return(nil, service.ErrNotTimedIn)

	w := makeRequest(router, "POST", "/api/v1/dtr/time-out", nil, authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"you have not timed in today"}`, w.Body.String())
}

func TestTimeOut_AlreadyTimedOut(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.attendance.EXPECT().TimeOut(gomock.Any(), testStudentID, &geo.Position{Lng: 120.98, Lat: 14.6}).Return(nil, service.ErrAlreadyTimedOut)

	w := makeRequest(router, "POST", "/api/v1/dtr/time-out", bytes.NewBufferString(`{"coordinates":[120.98,14.6]}`), authHeader())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"you have already timed out today"}`, w.Body.String())
}

func TestGetCompany_PublicAccess(t *testing.T) {
	_, m, router := newTestHandler(t)
	companyID := uuid.New()
	company := &models.Company{ID: companyID, Name: "Acme", SafeZone: testZone(), SafeZoneLabel: "HQ"}

	m.companies.EXPECT().GetCompany(gomock.Any(), companyID).Return(company, nil).Times(1)

	// Заголовок авторизации не нужен
	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/company/%s", companyID.String()), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.Company
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, companyID, resp.ID)
	require.NotNil(t, resp.SafeZone)
	assert.Equal(t, geo.TypePolygon, resp.SafeZone.Type)
	assert.True(t, resp.Zone().Contains(geo.AppCoordinate{Lat: 14.5995, Lng: 120.9842}))
}

func TestGetCompany_InvalidID(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.companies.EXPECT().GetCompany(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/company/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid company ID")
}

func TestGetCompany_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	companyID := uuid.New()

	m.companies.EXPECT().GetCompany(gomock.Any(), companyID).Return(nil, service.ErrCompanyNotFound)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/company/%s", companyID.String()), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "company not found")
}

func TestListCompanies_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	companies := []models.Company{{ID: uuid.New(), Name: "Acme"}, {ID: uuid.New(), Name: "Globex"}}

	m.companies.EXPECT().ListCompanies(gomock.Any()).Return(companies, nil)

	w := makeRequest(router, "GET", "/api/v1/company", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []models.Company
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Nil(t, resp[0].SafeZone)
}

func TestListCompanies_Unauthorized(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/company", nil, map[string]string{"Authorization": "Bearer wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestListCompanyStudents_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	companyID := uuid.New()
	ts := time.Date(2026, time.October, 18, 1, 0, 0, 0, time.UTC)
	students := []models.TrackedSubject{
		{ID: uuid.New(), FirstName: "Alice", LatestLocation: &models.LatestLocation{Lat: 14.6, Lng: 120.98, Timestamp: ts}},
		{ID: uuid.New(), FirstName: "Bea"},
	}

	m.companies.EXPECT().ListCompanyStudents(gomock.Any(), companyID).Return(students, nil)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/company/%s/students", companyID.String()), nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []models.TrackedSubject
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.NotNil(t, resp[0].LatestLocation)
	assert.Equal(t, 14.6, resp[0].LatestLocation.Lat)
	assert.Nil(t, resp[1].LatestLocation)
}

func TestUpdateSafeZone_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	companyID := uuid.New()
	zone := testZone()

	m.companies.EXPECT().
		UpdateSafeZone(gomock.Any(), companyID, gomock.Any(), "HQ").
		DoAndReturn(func(_ context.Context, id uuid.UUID, g *geo.Geometry, label string) (*models.Company, error) {
			assert.Equal(t, zone, g)
			return &models.Company{ID: id, SafeZone: g, SafeZoneLabel: label}, nil
		})

	body, _ := json.Marshal(SafeZoneRequest{SafeZone: zone, SafeZoneLabel: "HQ"})
	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/company/%s/safe-zone", companyID.String()), bytes.NewBuffer(body), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"safeZoneLabel":"HQ"`)
}

func TestUpdateSafeZone_ClearZone(t *testing.T) {
	_, m, router := newTestHandler(t)
	companyID := uuid.New()

	m.companies.EXPECT().
		UpdateSafeZone(gomock.Any(), companyID, (*geo.Geometry)(nil), "").
		Return(&models.Company{ID: companyID}, nil)

	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/company/%s/safe-zone", companyID.String()), bytes.NewBufferString(`{"safeZone":null}`), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"safeZone":null`)
}

func TestUpdateSafeZone_InvalidGeometry(t *testing.T) {
	_, m, router := newTestHandler(t)
	companyID := uuid.New()

	m.companies.EXPECT().
		UpdateSafeZone(gomock.Any(), companyID, gomock.Any(), "").
		Return(nil, fmt.Errorf("%w: %v", service.ErrInvalidSafeZone, geo.ErrInvalidRing))

	body := `{"safeZone":{"type":"Polygon","coordinates":[[[120.97,14.58],[120.99,14.58]]]}}`
	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/company/%s/safe-zone", companyID.String()), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid safe zone geometry")
}

func TestUpdateSafeZone_UnsupportedType(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.companies.EXPECT().UpdateSafeZone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	body := `{"safeZone":{"type":"Point","coordinates":[120.97,14.58]}}`
	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/company/%s/safe-zone", uuid.New().String()), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestBearerAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APITokens: map[string]uuid.UUID{"valid-token": testStudentID},
	}

	router.Use(BearerAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		id, ok := currentStudent(c)
		assert.True(t, ok)
		assert.Equal(t, testStudentID, id)
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-token"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerAuthMiddleware_Rejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APITokens: map[string]uuid.UUID{"valid-token": testStudentID},
	}

	testCases := []struct {
		name     string
		headers  map[string]string
		contains string
	}{
		{name: "missing header", headers: map[string]string{}, contains: "authorization required"},
		{name: "wrong scheme", headers: map[string]string{"Authorization": "Basic valid-token"}, contains: "authorization required"},
		{name: "unknown token", headers: map[string]string{"Authorization": "Bearer invalid-token"}, contains: "invalid token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(BearerAuthMiddleware(cfg, logger))
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := makeRequest(router, "GET", "/test", nil, tc.headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.contains)
		})
	}
}
