package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/internal/container"
	handlers "github.com/grainworks/portfolio-api/internal/interface/http"
	"github.com/grainworks/portfolio-api/internal/interface/middleware"
)

// RoadmapModule registers roadmap and milestone routes, all protected.
type RoadmapModule struct {
	Handler *handlers.RoadmapHandler
	Auth    *application.AuthService
}

func NewRoadmapModule(h *handlers.RoadmapHandler, auth *application.AuthService) *RoadmapModule {
	return &RoadmapModule{Handler: h, Auth: auth}
}

func (m *RoadmapModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/roadmaps")
	g.Use(
		middleware.Auth(m.Auth),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()),
	)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
		g.GET("/:id/milestones", m.Handler.ListMilestones)
		g.POST("/:id/milestones", m.Handler.CreateMilestone)
	}

	ms := rg.Group("/milestones")
	ms.Use(middleware.Auth(m.Auth))
	{
		ms.POST("/reorder", m.Handler.Reorder)
		ms.PUT("/:id", m.Handler.UpdateMilestone)
		ms.DELETE("/:id", m.Handler.DeleteMilestone)
	}
}
