package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/grainworks/portfolio-api/internal/application"
	handlers "github.com/grainworks/portfolio-api/internal/interface/http"
	"github.com/grainworks/portfolio-api/internal/interface/middleware"
)

// ArtifactModule registers artifact routes, all protected.
type ArtifactModule struct {
	Handler *handlers.ArtifactHandler
	Auth    *application.AuthService
}

func NewArtifactModule(h *handlers.ArtifactHandler, auth *application.AuthService) *ArtifactModule {
	return &ArtifactModule{Handler: h, Auth: auth}
}

func (m *ArtifactModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/artifacts")
	g.Use(middleware.Auth(m.Auth))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.POST("/:id/visibility", m.Handler.ToggleVisibility)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
