package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grainworks/portfolio-api/internal/container"
	handlers "github.com/grainworks/portfolio-api/internal/interface/http"
	"github.com/grainworks/portfolio-api/internal/interface/middleware"
)

// PortfolioModule registers the public visitor routes. No auth; everything
// served here is already filtered to PUBLIC.
type PortfolioModule struct {
	Handler *handlers.PortfolioHandler
}

func NewPortfolioModule(h *handlers.PortfolioHandler) *PortfolioModule {
	return &PortfolioModule{Handler: h}
}

func (m *PortfolioModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())
	g := rg.Group("/portfolio", limiter)
	{
		g.GET("", m.Handler.Portfolio)
		g.GET("/projects", m.Handler.Projects)
		g.GET("/projects/:id", m.Handler.Project)
		g.GET("/search", m.Handler.Search)
	}
}
