package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-platform/internal/application"
	"github.com/oksasatya/go-recipe-platform/internal/interface/middleware"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
	"github.com/oksasatya/go-recipe-platform/pkg/response"
	"github.com/oksasatya/go-recipe-platform/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrUsernameTaken):
		response.Error[any](c, http.StatusConflict, "username already taken", nil)
		return
	case errors.Is(err, application.ErrInvalidUsername):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"username": "invalid username"})
		return
	case errors.Is(err, application.ErrPasswordTooLong):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"password": "must be at most 72 bytes long"})
		return
	case err != nil:
		internalError(c, h.Logger, "register failed", err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "user registered successfully", nil)
}

// Login POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	case err != nil:
		internalError(c, h.Logger, "login failed", err)
		return
	}

	var meta any
	if !res.ExpiresAt.IsZero() {
		meta = map[string]any{"expires_at": res.ExpiresAt}
	}
	response.Success(c, http.StatusOK, gin.H{"token": res.Token}, "login successful", meta)
}

// GetProfile GET /profile (auth required)
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "access denied", nil)
		return
	}
	response.Success(c, http.StatusOK, h.Svc.GetProfile(id), "profile", nil)
}

// internalError logs err and answers with a generic 500.
func internalError(c *gin.Context, logger *logrus.Logger, msg string, err error) {
	if logger != nil {
		helpers.LogError(helpers.RequestLogger(logger, c), msg, err, nil)
	}
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}
