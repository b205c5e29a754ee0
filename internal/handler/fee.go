package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/service"
	"github.com/segyhp/school-fee-engine/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// FeeService is what the HTTP layer needs from the fee service
type FeeService interface {
	GetStudentFees(ctx context.Context, studentID string, query service.FeeQuery) (*domain.StudentFeesResponse, error)
	GetFeeSummary(ctx context.Context, studentID string, query service.FeeQuery) (*domain.StudentFeeSummary, error)
	PreviewPayment(ctx context.Context, studentID string, request *domain.MakePaymentRequest) (*domain.MakePaymentResponse, error)
	MakePayment(ctx context.Context, studentID string, request *domain.MakePaymentRequest) (*domain.MakePaymentResponse, error)
	GetReminders(ctx context.Context, studentID string, asOf *time.Time) ([]domain.FeeReminder, error)
	GetReminderHistory(ctx context.Context, studentID string, limit int) ([]domain.FeeReminder, error)
	GetCollectionProjection(ctx context.Context, month string, asOf *time.Time) (*domain.CollectionProjection, error)
	PreviewInstallments(request *domain.InstallmentPreviewRequest) (*domain.InstallmentDetails, error)
}

type FeeHandler struct {
	service   FeeService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewFeeHandler(service FeeService, logger *zap.Logger) *FeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeHandler{
		service:   service,
		validator: newValidator(),
		logger:    logger,
	}
}

// GetStudentFees handles GET /students/{studentId}/fees
func (h *FeeHandler) GetStudentFees(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	query, err := parseFeeQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", err)
		return
	}

	fees, err := h.service.GetStudentFees(r.Context(), studentID, query)
	if err != nil {
		h.writeServiceError(w, "Failed to calculate fees", err)
		return
	}

	response.Success(w, fees)
}

// GetFeeSummary handles GET /students/{studentId}/fees/summary
func (h *FeeHandler) GetFeeSummary(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	query, err := parseFeeQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", err)
		return
	}

	summary, err := h.service.GetFeeSummary(r.Context(), studentID, query)
	if err != nil {
		h.writeServiceError(w, "Failed to summarize fees", err)
		return
	}

	response.Success(w, summary)
}

// MakePayment handles POST /students/{studentId}/payments
func (h *FeeHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	request, ok := h.decodePayment(w, r)
	if !ok {
		return
	}

	result, err := h.service.MakePayment(r.Context(), studentID, request)
	if err != nil {
		h.writeServiceError(w, "Failed to record payment", err)
		return
	}

	response.Created(w, result)
}

// PreviewPayment handles POST /students/{studentId}/payments/preview
func (h *FeeHandler) PreviewPayment(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	request, ok := h.decodePayment(w, r)
	if !ok {
		return
	}

	result, err := h.service.PreviewPayment(r.Context(), studentID, request)
	if err != nil {
		h.writeServiceError(w, "Failed to preview payment", err)
		return
	}

	response.Success(w, result)
}

// GetReminders handles GET /students/{studentId}/reminders
func (h *FeeHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	asOf, err := parseDate(r.URL.Query().Get("as_of"))
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", err)
		return
	}

	reminders, err := h.service.GetReminders(r.Context(), studentID, asOf)
	if err != nil {
		h.writeServiceError(w, "Failed to generate reminders", err)
		return
	}

	response.Success(w, reminders)
}

// GetReminderHistory handles GET /students/{studentId}/reminders/history
func (h *FeeHandler) GetReminderHistory(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "Invalid query parameters", fmt.Errorf("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	reminders, err := h.service.GetReminderHistory(r.Context(), studentID, limit)
	if err != nil {
		h.writeServiceError(w, "Failed to load reminder history", err)
		return
	}

	response.Success(w, reminders)
}

// GetCollectionProjection handles GET /collections/projection
func (h *FeeHandler) GetCollectionProjection(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			response.BadRequest(w, "Invalid query parameters", fmt.Errorf("month must be formatted as YYYY-MM"))
			return
		}
	}

	asOf, err := parseDate(r.URL.Query().Get("as_of"))
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", err)
		return
	}

	projection, err := h.service.GetCollectionProjection(r.Context(), month, asOf)
	if err != nil {
		h.writeServiceError(w, "Failed to project collection", err)
		return
	}

	response.Success(w, projection)
}

// PreviewInstallments handles POST /installments/preview
func (h *FeeHandler) PreviewInstallments(w http.ResponseWriter, r *http.Request) {
	var request domain.InstallmentPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	details, err := h.service.PreviewInstallments(&request)
	if err != nil {
		h.writeServiceError(w, "Failed to build installment schedule", err)
		return
	}

	response.Success(w, details)
}

func (h *FeeHandler) decodePayment(w http.ResponseWriter, r *http.Request) (*domain.MakePaymentRequest, bool) {
	var request domain.MakePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return nil, false
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return nil, false
	}

	return &request, true
}
