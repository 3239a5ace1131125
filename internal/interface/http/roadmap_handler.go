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

type RoadmapHandler struct {
	Svc    *application.RoadmapService
	Logger *logrus.Logger
}

func NewRoadmapHandler(svc *application.RoadmapService, logger *logrus.Logger) *RoadmapHandler {
	return &RoadmapHandler{Svc: svc, Logger: logger}
}

type roadmapRequest struct {
	Title          string `json:"title" binding:"required,min=2,max=80"`
	TargetRole     string `json:"target_role" binding:"required,min=2,max=80"`
	TargetIndustry string `json:"target_industry" binding:"required,min=2,max=80"`
}

type milestoneRequest struct {
	Title          string `json:"title" binding:"required,min=2,max=100"`
	Description    string `json:"description" binding:"omitempty,max=1000"`
	DueDate        string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Status         string `json:"status" binding:"required,oneof=TODO DOING DONE"`
	SortOrder      int    `json:"sort_order" binding:"gte=0"`
	CompetencyTags string `json:"competency_tags"`
}

type reorderRequest struct {
	RoadmapID           string   `json:"roadmapId" binding:"required"`
	OrderedMilestoneIDs []string `json:"orderedMilestoneIds" binding:"required,min=1,dive,required"`
}

func (h *RoadmapHandler) List(c *gin.Context) {
	items, err := h.Svc.ListRoadmaps(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []entity.Roadmap{}
	}
	response.Success(c, http.StatusOK, items, "roadmaps", nil)
}

func (h *RoadmapHandler) Create(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.CreateRoadmap(c.Request.Context(), c.GetString("userID"), application.RoadmapInput{
		Title:          req.Title,
		TargetRole:     req.TargetRole,
		TargetIndustry: req.TargetIndustry,
	})
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "roadmap created", nil)
}

func (h *RoadmapHandler) Update(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.UpdateRoadmap(c.Request.Context(), c.GetString("userID"), c.Param("id"), application.RoadmapInput{
		Title:          req.Title,
		TargetRole:     req.TargetRole,
		TargetIndustry: req.TargetIndustry,
	})
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, r, "roadmap updated", nil)
}

func (h *RoadmapHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteRoadmap(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "roadmap deleted", nil)
}

func (h *RoadmapHandler) ListMilestones(c *gin.Context) {
	items, err := h.Svc.ListMilestones(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []entity.Milestone{}
	}
	response.Success(c, http.StatusOK, items, "milestones", nil)
}

func (h *RoadmapHandler) milestoneInput(c *gin.Context, req milestoneRequest) (application.MilestoneInput, bool) {
	due, err := helpers.ParseOptionalDate(req.DueDate)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"due_date": "must match date format: 2006-01-02"})
		return application.MilestoneInput{}, false
	}
	return application.MilestoneInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        due,
		Status:         entity.MilestoneStatus(req.Status),
		SortOrder:      req.SortOrder,
		CompetencyTags: req.CompetencyTags,
	}, true
}

func (h *RoadmapHandler) CreateMilestone(c *gin.Context) {
	var req milestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, ok := h.milestoneInput(c, req)
	if !ok {
		return
	}
	m, err := h.Svc.CreateMilestone(c.Request.Context(), c.GetString("userID"), c.Param("id"), in)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "milestone created", nil)
}

func (h *RoadmapHandler) UpdateMilestone(c *gin.Context) {
	var req milestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, ok := h.milestoneInput(c, req)
	if !ok {
		return
	}
	m, err := h.Svc.UpdateMilestone(c.Request.Context(), c.GetString("userID"), c.Param("id"), in)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, m, "milestone updated", nil)
}

func (h *RoadmapHandler) DeleteMilestone(c *gin.Context) {
	if err := h.Svc.DeleteMilestone(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "milestone deleted", nil)
}

// Reorder applies a full ordering for one roadmap's milestones. The request
// must carry exactly the current milestone id set; anything stale answers 400
// and leaves the stored order untouched.
func (h *RoadmapHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.ReorderMilestones(c.Request.Context(), c.GetString("userID"), req.RoadmapID, req.OrderedMilestoneIDs)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"ok": true}, "milestones reordered", nil)
}
