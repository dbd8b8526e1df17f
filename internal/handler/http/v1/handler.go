package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/config"
	"github.com/shenikar/ojt_tracker/internal/service"
)

type Handler struct {
	companyService    service.CompanyService
	attendanceService service.AttendanceService
	locationService   service.LocationService
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

func NewHandler(
	companyService service.CompanyService,
	attendanceService service.AttendanceService,
	locationService service.LocationService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		companyService:    companyService,
		attendanceService: attendanceService,
		locationService:   locationService,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// @Summary Record current location
// @Description Store the periodic location broadcast of the authenticated student.
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location body LocationRequest true "Current location"
// @Success 200 {object} LocationResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user/location [post]
func (h *Handler) recordLocation(c *gin.Context) {
	studentID, _ := currentStudent(c)
	log := h.logger.WithField("method", "recordLocation").WithField("student_id", studentID)

	var input LocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ping, err := h.locationService.RecordLocation(c.Request.Context(), studentID, DTOToCoordinate(input))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to record location in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToLocationResponse(ping))
}

// @Summary List my attendance records
// @Description Get all DTR records of the authenticated student, newest first.
// @Tags DTR
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceRecord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dtr/my-records [get]
func (h *Handler) myRecords(c *gin.Context) {
	studentID, _ := currentStudent(c)
	log := h.logger.WithField("method", "myRecords").WithField("student_id", studentID)

	records, err := h.attendanceService.MyRecords(c.Request.Context(), studentID)
	if err != nil {
		log.WithError(err).Error("Failed to list records from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// @Summary Time in
// @Description Record today's time-in. Rejected when the point lies outside the company safe zone.
// @Tags DTR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param coordinates body CoordinatesRequest true "Coordinates as [lng, lat]"
// @Success 201 {object} DTRResponse
// @Failure 400 {object} MessageResponse "Invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} MessageResponse "Outside the designated area"
// @Failure 409 {object} MessageResponse "Already timed in"
// @Failure 500 {object} MessageResponse "Internal server error"
// @Router /dtr/time-in [post]
func (h *Handler) timeIn(c *gin.Context) {
	studentID, _ := currentStudent(c)
	log := h.logger.WithField("method", "timeIn").WithField("student_id", studentID)

	var input CoordinatesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid request body"})
		return
	}

	record, err := h.attendanceService.TimeIn(c.Request.Context(), studentID, input.Coordinates)
	if err != nil {
		h.attendanceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToDTRResponse(record))
}

// @Summary Time out
// @Description Record today's time-out. Coordinates are optional and not checked against the safe zone.
// @Tags DTR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param coordinates body CoordinatesRequest false "Coordinates as [lng, lat] or null"
// @Success 200 {object} DTRResponse
// @Failure 400 {object} MessageResponse "Not timed in or invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} MessageResponse "Already timed out"
// @Failure 500 {object} MessageResponse "Internal server error"
// @Router /dtr/time-out [post]
func (h *Handler) timeOut(c *gin.Context) {
	studentID, _ := currentStudent(c)
	log := h.logger.WithField("method", "timeOut").WithField("student_id", studentID)

	var input CoordinatesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid request body"})
			return
		}
	}

	record, err := h.attendanceService.TimeOut(c.Request.Context(), studentID, input.Coordinates)
	if err != nil {
		h.attendanceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDTRResponse(record))
}

// attendanceError отвечает {message}, который клиент показывает стажеру как есть
func (h *Handler) attendanceError(c *gin.Context, log *logrus.Entry, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidCoordinates), errors.Is(err, service.ErrNotTimedIn):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrOutsideZone):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrAlreadyTimedIn), errors.Is(err, service.ErrAlreadyTimedOut):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrCompanyNotFound):
		status, message = http.StatusNotFound, err.Error()
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Attendance request failed")
	} else {
		log.WithError(err).Info("Attendance request rejected")
	}
	c.JSON(status, MessageResponse{Message: message})
}

// @Summary List companies
// @Description Get all companies with their safe zones.
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Company
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /company [get]
func (h *Handler) listCompanies(c *gin.Context) {
	log := h.logger.WithField("method", "listCompanies")

	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list companies from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, companies)
}

// @Summary Get company by ID
// @Description Get a single company with its safe zone. Does not require authentication.
// @Tags Company
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} models.Company
// @Failure 400 {object} map[string]string "Invalid company ID"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /company/{id} [get]
func (h *Handler) getCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	log := h.logger.WithField("method", "getCompany").WithField("id", id)

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.companyError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// @Summary List company students
// @Description Get students of a company with their latest known location.
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {array} models.TrackedSubject
// @Failure 400 {object} map[string]string "Invalid company ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /company/{id}/students [get]
func (h *Handler) listCompanyStudents(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	log := h.logger.WithField("method", "listCompanyStudents").WithField("id", id)

	students, err := h.companyService.ListCompanyStudents(c.Request.Context(), id)
	if err != nil {
		h.companyError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// @Summary Update company safe zone
// @Description Replace the safe zone polygon of a company. A null safeZone removes the restriction.
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param zone body SafeZoneRequest true "GeoJSON Polygon or MultiPolygon"
// @Success 200 {object} models.Company
// @Failure 400 {object} map[string]string "Invalid company ID, request body or geometry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /company/{id}/safe-zone [put]
func (h *Handler) updateSafeZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	log := h.logger.WithField("method", "updateSafeZone").WithField("id", id)

	var input SafeZoneRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.UpdateSafeZone(c.Request.Context(), id, input.SafeZone, input.SafeZoneLabel)
	if err != nil {
		h.companyError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) companyError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		log.WithError(err).Warn("Company not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
	case errors.Is(err, service.ErrInvalidSafeZone):
		log.WithError(err).Warn("Invalid safe zone")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Company request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
