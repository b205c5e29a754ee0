package handler

import (
	"net/http"

	"github.com/segyhp/school-fee-engine/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires every HTTP route of the fee engine
func NewRouter(feeHandler *FeeHandler, healthHandler *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger), response.RecoveryMiddleware(logger), response.CORSMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.JSONMiddleware)

	students := api.PathPrefix("/students/{studentId}").Subrouter()
	students.HandleFunc("/fees", feeHandler.GetStudentFees).Methods(http.MethodGet)
	students.HandleFunc("/fees/summary", feeHandler.GetFeeSummary).Methods(http.MethodGet)
	students.HandleFunc("/payments", feeHandler.MakePayment).Methods(http.MethodPost)
	students.HandleFunc("/payments/preview", feeHandler.PreviewPayment).Methods(http.MethodPost)
	students.HandleFunc("/reminders", feeHandler.GetReminders).Methods(http.MethodGet)
	students.HandleFunc("/reminders/history", feeHandler.GetReminderHistory).Methods(http.MethodGet)

	api.HandleFunc("/collections/projection", feeHandler.GetCollectionProjection).Methods(http.MethodGet)
	api.HandleFunc("/installments/preview", feeHandler.PreviewInstallments).Methods(http.MethodPost)

	return router
}
