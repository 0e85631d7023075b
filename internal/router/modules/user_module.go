package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-recipe-platform/internal/interface/http"
	"github.com/oksasatya/go-recipe-platform/internal/interface/middleware"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
)

// UserModule wires the credential endpoints.
// Public: POST /register, POST /login
// Protected: GET /profile
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Logger))
	{
		auth.GET("/profile", m.Handler.GetProfile)
	}
}
