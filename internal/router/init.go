package router

import (
	"github.com/oksasatya/go-recipe-platform/internal/container"
	handlers "github.com/oksasatya/go-recipe-platform/internal/interface/http"
	"github.com/oksasatya/go-recipe-platform/internal/router/modules"
)

// InitModules builds the handlers from c and adds their modules to the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	userHandler := handlers.NewUserHandler(c.UserService(), c.Logger)
	recipeHandler := handlers.NewRecipeHandler(c.RecipeService(), c.Logger, c.Cfg.MaxImageBytes)

	r.Add(modules.NewUserModule(userHandler, c.JWT, c.Logger))
	r.Add(modules.NewRecipeModule(recipeHandler, c.JWT, c.Logger))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
