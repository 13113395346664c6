package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/creditrequest"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

type CreditRequestHandler struct {
	service creditrequest.Service
	logger  *slog.Logger
}

func NewCreditRequestHandler(s creditrequest.Service, l *slog.Logger) *CreditRequestHandler {
	return &CreditRequestHandler{
		service: s,
		logger:  l.With("component", "CreditRequestHandler"),
	}
}

// Submit files a credit application for the caller.
//
// @Summary Submit a credit request
// @Description Validates the application, recomputes the payment, scores the applicant and stores the request as PENDING.
// @Tags Credit Requests
// @Accept json
// @Produce json
// @Param request body dto.CreateCreditRequestRequest true "Credit application"
// @Success 201 {object} dto.CreditRequestResponse "Credit request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credit-requests [post]
// @Security BearerAuth
func (h *CreditRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.CreateCreditRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	app, err := req.Application()
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.Submit(r.Context(), principal.UserID, app)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewCreditRequestResponse(created))
}

// ListMine returns the caller's own credit requests.
//
// @Summary List my credit requests
// @Tags Credit Requests
// @Produce json
// @Success 200 {array} dto.CreditRequestResponse "Credit requests of the caller"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credit-requests [get]
// @Security BearerAuth
func (h *CreditRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	reqs, err := h.service.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreditRequestResponses(reqs))
}

// Get returns one credit request. Clients only see their own requests.
//
// @Summary Retrieve a credit request
// @Tags Credit Requests
// @Produce json
// @Param requestID path int true "Credit request ID"
// @Success 200 {object} dto.CreditRequestResponse "Credit request details"
// @Failure 400 {object} dto.ErrorResponse "Invalid credit request ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Credit request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credit-requests/{requestID} [get]
// @Security BearerAuth
func (h *CreditRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := getIDFromURL(r, "requestID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	req, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	// Other users' requests are reported as missing.
	if !principal.IsAdmin() && req.UserID != principal.UserID {
		h.logger.WarnContext(r.Context(), "Credit request access denied", "credit_request_id", id, "user_id", principal.UserID)
		respondError(w, apperrors.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreditRequestResponse(req))
}
