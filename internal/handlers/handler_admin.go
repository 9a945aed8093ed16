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

// adminHandler serves staff management and the activity log.
type adminHandler struct {
	userService     portssvc.UserSvcFacade
	activityService portssvc.ActivitySvc
}

func registerAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, as portssvc.ActivitySvc) {
	h := &adminHandler{userService: us, activityService: as}

	admin := rg.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.GET("/activity", h.listActivity)
	}
}

// createUser godoc
// @Summary Register a staff member
// @Description Creates a user account that can log in with its phone number.
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Phone already registered"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *adminHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "create user")
		return
	}

	logger.Info("User created", slog.String("user_id", user.ID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List staff
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		writeServiceError(c, logger, err, "list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// listActivity godoc
// @Summary Activity log
// @Description Audit entries, newest first. Pass nextToken from the previous page to continue.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(500)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/activity [get]
func (h *adminHandler) listActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	entries, next, err := h.activityService.ListActivity(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		writeServiceError(c, logger, err, "list activity")
		return
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, dto.ListActivityResponse{Entries: entries, NextToken: next})
}
