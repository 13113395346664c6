package handler

import (
	"credit-engine/internal/api/handler/dto"
	mw "credit-engine/internal/api/middleware"
	"credit-engine/internal/config"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type AuthHandler struct {
	cfg    config.AuthConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
		now:    time.Now,
	}
}

// GenerateBearerToken issues a development token for the given subject and role.
//
// @Summary Generate a JWT bearer token
// @Description Issues an HS256 token carrying the subject and role. ADMIN tokens are only issued when server.auth.allowAdminTokens is set. Intended for development and testing; there is no password check.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Subject and role"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 403 {object} dto.ErrorResponse "ADMIN tokens are disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode token request", "error", err)
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		respondError(w, apperrors.NewValidationError("sub", "sub is required"))
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = mw.RoleClient
	case mw.RoleClient:
	case mw.RoleAdmin:
		if !h.cfg.AllowAdminTokens {
			h.logger.WarnContext(r.Context(), "Refused ADMIN token request", "subject", subject)
			respondError(w, fmt.Errorf("%w: ADMIN tokens are not issued by this endpoint", apperrors.ErrForbidden))
			return
		}
	default:
		respondError(w, apperrors.NewValidationError("role", "role must be CLIENT or ADMIN"))
		return
	}

	now := h.now()
	token, err := mw.IssueToken(h.cfg.JWTSecret, subject, role, h.cfg.TokenTTL, now)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", "error", err)
		respondError(w, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", "subject", subject, "role", role)
	respondJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: now.Add(h.cfg.TokenTTL).UTC(),
	})
}
