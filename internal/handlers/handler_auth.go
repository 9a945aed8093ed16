package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService  portssvc.AuthSvc
	tokenService portssvc.TokenSvc
}

func newAuthHandler(as portssvc.AuthSvc, ts portssvc.TokenSvc) *authHandler {
	return &authHandler{authService: as, tokenService: ts}
}

// registerAuthRoutes sets up the public login routes behind the rate limiter.
func registerAuthRoutes(rg *gin.RouterGroup, as portssvc.AuthSvc, ts portssvc.TokenSvc, limit gin.HandlerFunc) {
	h := newAuthHandler(as, ts)

	auth := rg.Group("/auth", limit)
	{
		auth.POST("/login", h.login)
		auth.POST("/admin", h.adminLogin)
	}
}

// login godoc
// @Summary Staff login
// @Description Logs a staff member in with the phone number an admin registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Phone number"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Account not found"
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, err := h.authService.LoginWithPhone(c.Request.Context(), req.Phone)
	if err != nil {
		writeServiceError(c, logger, err, "log in")
		return
	}
	h.issueToken(c, logger, *actor)
}

// adminLogin godoc
// @Summary Admin login
// @Description Exchanges the admin passcode for an admin token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.AdminLoginRequest true "Passcode"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admin login disabled"
// @Router /auth/admin [post]
func (h *authHandler) adminLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, err := h.authService.AdminLogin(c.Request.Context(), req.Passcode)
	if err != nil {
		writeServiceError(c, logger, err, "log in")
		return
	}
	h.issueToken(c, logger, *actor)
}

func (h *authHandler) issueToken(c *gin.Context, logger *slog.Logger, actor domain.Actor) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), actor)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", actor.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	logger.Info("Login successful", slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: actor})
}
