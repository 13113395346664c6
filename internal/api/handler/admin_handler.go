package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/creditrequest"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

type AdminHandler struct {
	service creditrequest.Service
	logger  *slog.Logger
}

func NewAdminHandler(s creditrequest.Service, l *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: s,
		logger:  l.With("component", "AdminHandler"),
	}
}

// ListCreditRequests returns all credit requests, optionally filtered by status.
//
// @Summary List credit requests
// @Tags Admin
// @Produce json
// @Param status query string false "Status filter (PENDING, APPROVED, REJECTED, ISSUED, CANCELED)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} dto.CreditRequestResponse "Credit requests, newest first"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/credit-requests [get]
// @Security BearerAuth
func (h *AdminHandler) ListCreditRequests(w http.ResponseWriter, r *http.Request) {
	var filter creditrequest.Filter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := creditrequest.ParseStatus(raw)
		if err != nil {
			respondError(w, err)
			return
		}
		filter.Status = &status
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		respondError(w, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		respondError(w, err)
		return
	}

	reqs, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreditRequestResponses(reqs))
}

// UpdateStatus moves a credit request to a new status.
//
// @Summary Change credit request status
// @Description Issued requests are locked; any attempt to move them returns 409.
// @Tags Admin
// @Accept json
// @Produce json
// @Param requestID path int true "Credit request ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.CreditRequestResponse "Updated credit request"
// @Failure 400 {object} dto.ErrorResponse "Invalid status or ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Credit request not found"
// @Failure 409 {object} dto.ErrorResponse "Credit request is issued"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/credit-requests/{requestID}/status [post]
// @Security BearerAuth
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "requestID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	status, err := req.Validate()
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Credit request status updated", "credit_request_id", id, "status", status)
	respondJSON(w, http.StatusOK, dto.NewCreditRequestResponse(updated))
}

// GetStatistics returns the credit request counters.
//
// @Summary Credit request statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.StatisticsResponse "Counters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/statistics [get]
// @Security BearerAuth
func (h *AdminHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewStatisticsResponse(stats))
}
