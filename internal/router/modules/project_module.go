package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/grainworks/portfolio-api/internal/application"
	handlers "github.com/grainworks/portfolio-api/internal/interface/http"
	"github.com/grainworks/portfolio-api/internal/interface/middleware"
)

// ProjectModule registers project routes, all protected.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Auth    *application.AuthService
}

func NewProjectModule(h *handlers.ProjectHandler, auth *application.AuthService) *ProjectModule {
	return &ProjectModule{Handler: h, Auth: auth}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects")
	g.Use(middleware.Auth(m.Auth))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
