package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/pkg/helpers"
	"github.com/grainworks/portfolio-api/pkg/response"
	"github.com/grainworks/portfolio-api/pkg/validation"
)

type ArtifactHandler struct {
	Svc    *application.ArtifactService
	Logger *logrus.Logger
}

func NewArtifactHandler(svc *application.ArtifactService, logger *logrus.Logger) *ArtifactHandler {
	return &ArtifactHandler{Svc: svc, Logger: logger}
}

// artifactRequest binds multipart form fields. Images ride alongside in the
// "images" file field, at most three per request.
type artifactRequest struct {
	Type         string   `form:"type" binding:"required,oneof=STUDY PROJECT CERT CONTEST INTERNSHIP CLUB VOLUNTEER OTHER"`
	Title        string   `form:"title" binding:"required,min=2,max=120"`
	Summary      string   `form:"summary" binding:"required,min=2,max=200"`
	ContentMd    string   `form:"content_md" binding:"omitempty,max=5000"`
	Date         string   `form:"date" binding:"required,datetime=2006-01-02"`
	Tags         string   `form:"tags"`
	LinkURL      string   `form:"link_url" binding:"omitempty,url"`
	Visibility   string   `form:"visibility" binding:"required,oneof=PUBLIC PRIVATE"`
	MilestoneIDs []string `form:"milestone_ids"`
	DailyGoalIDs []string `form:"daily_goal_ids"`
}

func (h *ArtifactHandler) bind(c *gin.Context) (application.ArtifactInput, []application.ImageUpload, func(), bool) {
	var req artifactRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return application.ArtifactInput{}, nil, nil, false
	}
	date, err := helpers.ParseDateInput(req.Date)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must match date format: 2006-01-02"})
		return application.ArtifactInput{}, nil, nil, false
	}

	var uploads []application.ImageUpload
	closer := func() {}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		uploads, closer = formImages(form.File["images"])
	}

	in := application.ArtifactInput{
		Type:         entity.ArtifactType(req.Type),
		Title:        req.Title,
		Summary:      req.Summary,
		ContentMd:    req.ContentMd,
		Date:         date,
		Tags:         req.Tags,
		LinkURL:      req.LinkURL,
		Visibility:   entity.Visibility(req.Visibility),
		MilestoneIDs: req.MilestoneIDs,
		DailyGoalIDs: req.DailyGoalIDs,
	}
	return in, uploads, closer, true
}

func (h *ArtifactHandler) Create(c *gin.Context) {
	in, uploads, closer, ok := h.bind(c)
	if !ok {
		return
	}
	defer closer()

	a, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), in, uploads)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "artifact created", nil)
}

func (h *ArtifactHandler) Update(c *gin.Context) {
	in, uploads, closer, ok := h.bind(c)
	if !ok {
		return
	}
	defer closer()

	a, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), in, uploads)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "artifact updated", nil)
}

func (h *ArtifactHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "artifact", nil)
}

// List serves the dashboard listing with optional type/visibility/tag filters
// and fixed-size pages.
func (h *ArtifactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	q := application.ListArtifactsQuery{
		Type:       entity.ArtifactType(c.Query("type")),
		Visibility: entity.Visibility(c.Query("visibility")),
		Tag:        c.Query("tag"),
		Page:       page,
	}
	pageData, err := h.Svc.List(c.Request.Context(), c.GetString("userID"), q)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, pageData.Items, "artifacts", map[string]any{
		"total":       pageData.Total,
		"page":        pageData.Page,
		"total_pages": pageData.TotalPages,
	})
}

func (h *ArtifactHandler) ToggleVisibility(c *gin.Context) {
	a, err := h.Svc.ToggleVisibility(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "visibility toggled", nil)
}

func (h *ArtifactHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "artifact deleted", nil)
}
