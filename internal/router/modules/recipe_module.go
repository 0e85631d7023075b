package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-recipe-platform/internal/interface/http"
	"github.com/oksasatya/go-recipe-platform/internal/interface/middleware"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
)

// RecipeModule: reads are public, writes require a token.
type RecipeModule struct {
	Handler *handlers.RecipeHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewRecipeModule(h *handlers.RecipeHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *RecipeModule {
	return &RecipeModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/recipes", m.Handler.List)
	rg.GET("/recipes/:id", m.Handler.Get)
	rg.GET("/search/recipes", m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Logger))
	{
		auth.POST("/recipes", m.Handler.Create)
		auth.PUT("/recipes/:id", m.Handler.Update)
		auth.DELETE("/recipes/:id", m.Handler.Delete)
		auth.PUT("/recipes/:id/image", m.Handler.UploadImage)
	}
}
