package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/grainworks/portfolio-api/internal/application"
	handlers "github.com/grainworks/portfolio-api/internal/interface/http"
	"github.com/grainworks/portfolio-api/internal/interface/middleware"
)

// DailyModule registers daily plan and goal routes, all protected.
type DailyModule struct {
	Handler *handlers.DailyHandler
	Auth    *application.AuthService
}

func NewDailyModule(h *handlers.DailyHandler, auth *application.AuthService) *DailyModule {
	return &DailyModule{Handler: h, Auth: auth}
}

func (m *DailyModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/daily")
	g.Use(middleware.Auth(m.Auth))
	{
		g.GET("/plan", m.Handler.GetPlan)
		g.PUT("/plan", m.Handler.UpsertPlan)
		g.POST("/goals", m.Handler.CreateGoal)
		g.POST("/goals/:id/toggle", m.Handler.ToggleGoal)
		g.DELETE("/goals/:id", m.Handler.DeleteGoal)
	}
}
