package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/service"
	apperrors "github.com/trueinsight/reviewtrust/pkg/errors"
	"github.com/trueinsight/reviewtrust/pkg/httputil"
	"github.com/trueinsight/reviewtrust/pkg/validator"
)

const maxAnalyzeBody = 4 << 20

// IntegrityHandler handles HTTP requests for integrity endpoints.
type IntegrityHandler struct {
	service *service.IntegrityService
	logger  *slog.Logger
}

// NewIntegrityHandler creates a new integrity HTTP handler.
func NewIntegrityHandler(svc *service.IntegrityService, logger *slog.Logger) *IntegrityHandler {
	return &IntegrityHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AnalyzeRequest is the JSON request body for scoring an ad-hoc batch.
type AnalyzeRequest struct {
	Category string          `json:"category" validate:"max=100"`
	Reviews  []ReviewRequest `json:"reviews" validate:"required,max=5000,dive"`
}

// ReviewRequest is a single review inside an AnalyzeRequest.
type ReviewRequest struct {
	ID        string    `json:"id" validate:"max=64"`
	UserID    string    `json:"user_id" validate:"required,uuid"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Text      string    `json:"text" validate:"required,max=10000"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

func (r AnalyzeRequest) toDomain() []domain.Review {
	reviews := make([]domain.Review, len(r.Reviews))
	for i, rv := range r.Reviews {
		reviews[i] = domain.Review{
			ID:        rv.ID,
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			Text:      rv.Text,
			CreatedAt: rv.CreatedAt,
		}
	}
	return reviews
}

// --- Handlers ---

// GetProductIntegrity handles GET /api/v1/products/{productId}/integrity
func (h *IntegrityHandler) GetProductIntegrity(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "productId")))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid product id"), h.logger)
		return
	}

	result, err := h.service.ProductIntegrity(r.Context(), productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// AnalyzeBatch handles POST /api/v1/integrity/analyze
func (h *IntegrityHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBody)

	var req AnalyzeRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.AnalyzeBatch(r.Context(), req.Category, req.toDomain())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
