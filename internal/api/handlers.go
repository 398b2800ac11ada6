package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/audit"
	"github.com/medhubhq/medhub/internal/auth"
	"github.com/medhubhq/medhub/internal/hospital"
	"github.com/medhubhq/medhub/internal/patient"
)

type Handler struct {
	accountService  account.Service
	patientService  patient.Service
	hospitalService hospital.Service
	auditService    audit.Service
	logger          *zap.Logger
}

func NewHandler(
	accountService account.Service,
	patientService patient.Service,
	hospitalService hospital.Service,
	auditService audit.Service,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		accountService:  accountService,
		patientService:  patientService,
		hospitalService: hospitalService,
		auditService:    auditService,
		logger:          logger,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Account handlers

func (h *Handler) CreateAccount(c *gin.Context) {
	var input account.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Accounts are created for the verified identity, not an arbitrary one.
	if input.UserID == "" {
		input.UserID = auth.GetUserID(c)
	}

	if err := h.accountService.Create(c.Request.Context(), input); err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondCreated(c, nil)
}

func (h *Handler) GetAccount(c *gin.Context) {
	role := account.Role(c.Param("role"))
	userID := c.Param("userId")

	acct, err := h.accountService.Get(c.Request.Context(), userID, role)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, acct)
}

// Patient handlers

func (h *Handler) RegisterPatient(c *gin.Context) {
	input, err := h.bindPatientInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Hospitals register patients under their own account.
	if input.HospitalUserID == "" && auth.GetUserRole(c) == string(account.RoleHospital) {
		input.HospitalUserID = auth.GetUserID(c)
	}

	p, err := h.patientService.Register(c.Request.Context(), input)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondCreated(c, p)
}

func (h *Handler) bindPatientInput(c *gin.Context) (patient.RegistrationInput, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req patientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return patient.RegistrationInput{}, err
		}
		return req.toInput()
	}

	// The UI posts flat form bodies with dotted-path keys.
	if err := c.Request.ParseMultipartForm(1 << 20); err != nil {
		if err := c.Request.ParseForm(); err != nil {
			return patient.RegistrationInput{}, err
		}
	}
	return patientInputFromForm(c.Request.PostForm)
}

func (h *Handler) ListPatients(c *gin.Context) {
	hospitalUserID := auth.GetUserID(c)
	if auth.GetUserRole(c) != string(account.RoleHospital) {
		hospitalUserID = c.Query("hospitalId")
		if hospitalUserID == "" {
			respondError(c, http.StatusBadRequest, "hospitalId query parameter is required")
			return
		}
	}

	patients, err := h.patientService.List(c.Request.Context(), hospitalUserID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, patients)
}

func (h *Handler) CheckUHN(c *gin.Context) {
	available, err := h.patientService.CheckUHN(c.Request.Context(), c.Param("uhn"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"isUnique": available})
}

func (h *Handler) GenerateUHN(c *gin.Context) {
	uhn, err := h.patientService.GenerateUHN(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"uhn": uhn})
}

// Hospital profile handlers

func (h *Handler) GetHospitalProfile(c *gin.Context) {
	profile, err := h.hospitalService.Get(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, profile)
}

func (h *Handler) UpdateHospitalProfile(c *gin.Context) {
	var patch hospital.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.hospitalService.Update(c.Request.Context(), auth.GetUserID(c), patch)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, profile)
}

// Audit handlers (admin only)

func (h *Handler) GetAuditLogs(c *gin.Context) {
	filters := map[string]interface{}{}
	for _, field := range []string{"user_id", "resource", "resource_id", "event_type"} {
		if value := c.Query(field); value != "" {
			filters[field] = value
		}
	}

	from, _ := strconv.Atoi(c.DefaultQuery("from", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))
	if size <= 0 || size > 500 {
		size = 50
	}

	events, err := h.auditService.QueryEvents(c.Request.Context(), filters, from, size)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, events)
}
