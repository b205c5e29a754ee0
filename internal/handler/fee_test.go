package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/service"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
)

func newTestRouter(svc *MockFeeService) http.Handler {
	health := &HealthHandler{checks: map[string]healthCheck{}, timeout: time.Second}
	return NewRouter(NewFeeHandler(svc, nil), health, nil)
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestFeeHandler_GetStudentFees(t *testing.T) {
	asOf := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockFeeService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "query flags are passed through",
			target: "/api/v1/students/STU001/fees?as_of=2024-01-20&late_fees=false&installments=true&grace_days=3",
			setupMock: func(m *MockFeeService) {
				m.On("GetStudentFees", mock.Anything, "STU001", mock.MatchedBy(func(q service.FeeQuery) bool {
					return q.AsOfDate != nil && q.AsOfDate.Equal(asOf) &&
						q.CalculateLateFees != nil && !*q.CalculateLateFees &&
						q.CalculateInstallments != nil && *q.CalculateInstallments &&
						q.ApplyDiscounts == nil &&
						q.GracePeriodDays != nil && *q.GracePeriodDays == 3
				})).Return(&domain.StudentFeesResponse{
					StudentID: "STU001",
					AsOfDate:  asOf,
					Fees: []domain.CalculatedFee{{
						FeeHeadID:         "TUITION",
						FinalAmount:       decimal.NewFromInt(8500),
						OutstandingAmount: decimal.NewFromInt(6500),
						Status:            domain.FeeStatusPartiallyPaid,
					}},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Partially Paid",
		},
		{
			name:           "bad as_of",
			target:         "/api/v1/students/STU001/fees?as_of=20-01-2024",
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid query parameters",
		},
		{
			name:           "bad flag",
			target:         "/api/v1/students/STU001/fees?discounts=maybe",
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "discounts must be true or false",
		},
		{
			name:           "negative grace",
			target:         "/api/v1/students/STU001/fees?grace_days=-2",
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "grace_days",
		},
		{
			name:   "unknown student",
			target: "/api/v1/students/GHOST/fees",
			setupMock: func(m *MockFeeService) {
				m.On("GetStudentFees", mock.Anything, "GHOST", service.FeeQuery{}).
					Return(nil, customError.WrapStudentNotFound("GHOST")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   customError.ErrCodeStudentNotFound,
		},
		{
			name:   "database failure",
			target: "/api/v1/students/STU001/fees",
			setupMock: func(m *MockFeeService) {
				m.On("GetStudentFees", mock.Anything, "STU001", service.FeeQuery{}).
					Return(nil, customError.WrapDatabaseError(errors.New("conn refused"))).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Failed to calculate fees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockFeeService{}
			tt.setupMock(svc)

			w := serve(newTestRouter(svc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestFeeHandler_GetFeeSummary(t *testing.T) {
	svc := &MockFeeService{}
	svc.On("GetFeeSummary", mock.Anything, "STU001", service.FeeQuery{}).Return(&domain.StudentFeeSummary{
		StudentID:        "STU001",
		TotalOutstanding: decimal.NewFromInt(2000),
		FeeCount:         2,
	}, nil).Once()

	w := serve(newTestRouter(svc), http.MethodGet, "/api/v1/students/STU001/fees/summary", "")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var summary domain.StudentFeeSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.FeeCount)
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(2000)))
}

func TestFeeHandler_MakePayment(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		setupMock      func(*MockFeeService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "records payment",
			path: "/api/v1/students/STU001/payments",
			body: `{"amount":"1500","payment_mode":"UPI","strategy":"oldest_first","reference":"UTR123"}`,
			setupMock: func(m *MockFeeService) {
				m.On("MakePayment", mock.Anything, "STU001", mock.MatchedBy(func(r *domain.MakePaymentRequest) bool {
					return r.Amount.Equal(decimal.NewFromInt(1500)) &&
						r.PaymentMode == domain.PaymentModeUPI &&
						r.Strategy == domain.AllocationOldestFirst &&
						r.Reference != nil && *r.Reference == "UTR123"
				})).Return(&domain.MakePaymentResponse{
					StudentID: "STU001",
					Strategy:  domain.AllocationOldestFirst,
					Allocations: []domain.PaymentAllocation{
						{FeeHeadID: "TUITION", AllocatedAmount: decimal.NewFromInt(1000), RemainingOutstanding: decimal.Zero},
						{FeeHeadID: "TRANSPORT", AllocatedAmount: decimal.NewFromInt(500), RemainingOutstanding: decimal.NewFromInt(500)},
					},
					Unallocated: decimal.Zero,
				}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   "TRANSPORT",
		},
		{
			name: "preview does not record",
			path: "/api/v1/students/STU001/payments/preview",
			body: `{"amount":2000,"payment_mode":"CASH","strategy":"equal_distribution"}`,
			setupMock: func(m *MockFeeService) {
				m.On("PreviewPayment", mock.Anything, "STU001", mock.Anything).Return(&domain.MakePaymentResponse{
					StudentID: "STU001",
					Strategy:  domain.AllocationEqualDistribution,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "equal_distribution",
		},
		{
			name:           "invalid json",
			path:           "/api/v1/students/STU001/payments",
			body:           `invalid json`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid JSON payload",
		},
		{
			name:           "zero amount",
			path:           "/api/v1/students/STU001/payments",
			body:           `{"amount":"0","payment_mode":"CASH"}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name:           "negative amount",
			path:           "/api/v1/students/STU001/payments",
			body:           `{"amount":"-10","payment_mode":"CASH"}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name:           "unknown payment mode",
			path:           "/api/v1/students/STU001/payments",
			body:           `{"amount":"10","payment_mode":"BARTER"}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name:           "unknown strategy",
			path:           "/api/v1/students/STU001/payments",
			body:           `{"amount":"10","payment_mode":"CASH","strategy":"round_robin"}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name: "nothing outstanding",
			path: "/api/v1/students/STU001/payments",
			body: `{"amount":"10","payment_mode":"CASH"}`,
			setupMock: func(m *MockFeeService) {
				m.On("MakePayment", mock.Anything, "STU001", mock.Anything).
					Return(nil, customError.WrapNoOutstandingBalance("STU001")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   customError.ErrCodeNoOutstandingBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockFeeService{}
			tt.setupMock(svc)

			w := serve(newTestRouter(svc), http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestFeeHandler_Reminders(t *testing.T) {
	svc := &MockFeeService{}
	svc.On("GetReminders", mock.Anything, "STU001", mock.MatchedBy(func(asOf *time.Time) bool {
		return asOf != nil && asOf.Equal(time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.FeeReminder{
		{StudentID: "STU001", FeeHeadID: "TUITION", ReminderType: domain.ReminderFinal, OverdueDays: 35},
	}, nil).Once()
	svc.On("GetReminderHistory", mock.Anything, "STU001", 10).Return([]domain.FeeReminder{}, nil).Once()

	router := newTestRouter(svc)

	w := serve(router, http.MethodGet, "/api/v1/students/STU001/reminders?as_of=2024-02-05", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reminder_type":"final"`)

	w = serve(router, http.MethodGet, "/api/v1/students/STU001/reminders/history?limit=10", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/api/v1/students/STU001/reminders/history?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestFeeHandler_GetCollectionProjection(t *testing.T) {
	svc := &MockFeeService{}
	svc.On("GetCollectionProjection", mock.Anything, "2024-01", (*time.Time)(nil)).Return(&domain.CollectionProjection{
		Month:          "2024-01",
		TargetDaily:    decimal.NewFromInt(1000),
		CollectionRate: decimal.RequireFromString("0.9"),
		OnTrack:        true,
	}, nil).Once()

	router := newTestRouter(svc)

	w := serve(router, http.MethodGet, "/api/v1/collections/projection?month=2024-01", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"on_track":true`)

	w = serve(router, http.MethodGet, "/api/v1/collections/projection?month=Jan-2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestFeeHandler_PreviewInstallments(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockFeeService)
		expectedStatus int
	}{
		{
			name: "valid request",
			body: `{"total_amount":"1000","installment_count":3,"paid_amount":"0","start_date":"2024-04-01T00:00:00Z"}`,
			setupMock: func(m *MockFeeService) {
				m.On("PreviewInstallments", mock.MatchedBy(func(r *domain.InstallmentPreviewRequest) bool {
					return r.InstallmentCount == 3 && r.TotalAmount.Equal(decimal.NewFromInt(1000))
				})).Return(&domain.InstallmentDetails{
					InstallmentAmount:     decimal.RequireFromString("333.33"),
					RemainingInstallments: 3,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "zero count",
			body:           `{"total_amount":"1000","installment_count":0,"start_date":"2024-04-01T00:00:00Z"}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative total",
			body:           `{"total_amount":"-5","installment_count":2,"start_date":"2024-04-01T00:00:00Z"}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing start date",
			body:           `{"total_amount":"1000","installment_count":2}`,
			setupMock:      func(m *MockFeeService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockFeeService{}
			tt.setupMock(svc)

			w := serve(newTestRouter(svc), http.MethodPost, "/api/v1/installments/preview", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(customError.WrapStudentNotFound("x")))
	assert.Equal(t, http.StatusBadRequest, statusFor(customError.WrapInvalidInstallmentCount(0)))
	assert.Equal(t, http.StatusBadRequest, statusFor(customError.WrapUnknownAllocationStrategy("x")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(customError.WrapCacheError(context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("plain")))
}
