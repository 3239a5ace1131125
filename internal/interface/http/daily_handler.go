package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/pkg/helpers"
	"github.com/grainworks/portfolio-api/pkg/response"
	"github.com/grainworks/portfolio-api/pkg/validation"
)

type DailyHandler struct {
	Svc    *application.DailyService
	Logger *logrus.Logger
}

func NewDailyHandler(svc *application.DailyService, logger *logrus.Logger) *DailyHandler {
	return &DailyHandler{Svc: svc, Logger: logger}
}

type dailyPlanRequest struct {
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Reflection string `json:"reflection" binding:"omitempty,max=1000"`
	Mood       *int   `json:"mood" binding:"omitempty,gte=1,lte=5"`
}

type dailyGoalRequest struct {
	DailyPlanID string `json:"daily_plan_id" binding:"required"`
	Title       string `json:"title" binding:"required,min=2,max=120"`
	Category    string `json:"category" binding:"omitempty,max=40"`
}

// GetPlan returns the plan and goals for ?date=yyyy-mm-dd, defaulting to
// today. An absent plan answers success with null data.
func (h *DailyHandler) GetPlan(c *gin.Context) {
	raw := c.Query("date")
	var date = helpers.Today()
	if raw != "" {
		parsed, err := helpers.ParseDateInput(raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must match date format: 2006-01-02"})
			return
		}
		date = parsed
	}
	plan, goals, err := h.Svc.PlanForDate(c.Request.Context(), c.GetString("userID"), date)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	if plan == nil {
		response.Success[any](c, http.StatusOK, nil, "no plan for date", nil)
		return
	}
	if goals == nil {
		goals = []entity.DailyGoal{}
	}
	response.Success(c, http.StatusOK, gin.H{"plan": plan, "goals": goals}, "daily plan", nil)
}

func (h *DailyHandler) UpsertPlan(c *gin.Context) {
	var req dailyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	date, err := helpers.ParseDateInput(req.Date)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must match date format: 2006-01-02"})
		return
	}
	plan, err := h.Svc.UpsertPlan(c.Request.Context(), c.GetString("userID"), application.DailyPlanInput{
		Date:       date,
		Reflection: req.Reflection,
		Mood:       req.Mood,
	})
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "daily plan saved", nil)
}

func (h *DailyHandler) CreateGoal(c *gin.Context) {
	var req dailyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Svc.CreateGoal(c.Request.Context(), c.GetString("userID"), application.DailyGoalInput{
		DailyPlanID: req.DailyPlanID,
		Title:       req.Title,
		Category:    req.Category,
	})
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, g, "goal created", nil)
}

func (h *DailyHandler) ToggleGoal(c *gin.Context) {
	g, err := h.Svc.ToggleGoal(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, g, "goal toggled", nil)
}

func (h *DailyHandler) DeleteGoal(c *gin.Context) {
	if err := h.Svc.DeleteGoal(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "goal deleted", nil)
}
