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

type ProjectHandler struct {
	Svc    *application.ProjectService
	Logger *logrus.Logger
}

func NewProjectHandler(svc *application.ProjectService, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Logger: logger}
}

// projectRequest binds multipart form fields. The representative image comes
// either as the "image" file field or the image_url value.
type projectRequest struct {
	Title        string   `form:"title" binding:"required,min=2,max=120"`
	Category     string   `form:"category" binding:"omitempty,max=60"`
	Topic        string   `form:"topic" binding:"omitempty,max=60"`
	Description  string   `form:"description" binding:"required,min=2,max=2000"`
	ImageURL     string   `form:"image_url" binding:"omitempty,url"`
	WorkDate     string   `form:"work_date" binding:"required,datetime=2006-01-02"`
	PublishedAt  string   `form:"published_at" binding:"omitempty,datetime=2006-01-02"`
	SnsPromoText string   `form:"sns_promo_text" binding:"omitempty,max=500"`
	Role         string   `form:"role" binding:"required,min=2,max=120"`
	PeriodStart  string   `form:"period_start" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd    string   `form:"period_end" binding:"omitempty,datetime=2006-01-02"`
	TechStack    string   `form:"tech_stack"`
	RepoURL      string   `form:"repo_url" binding:"omitempty,url"`
	DemoURL      string   `form:"demo_url" binding:"omitempty,url"`
	Visibility   string   `form:"visibility" binding:"required,oneof=PUBLIC PRIVATE"`
	ArtifactIDs  []string `form:"artifact_ids"`
}

func (h *ProjectHandler) bind(c *gin.Context) (application.ProjectInput, *application.ImageUpload, func(), bool) {
	fail := func() (application.ProjectInput, *application.ImageUpload, func(), bool) {
		return application.ProjectInput{}, nil, nil, false
	}

	var req projectRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return fail()
	}
	workDate, err := helpers.ParseDateInput(req.WorkDate)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"work_date": "must match date format: 2006-01-02"})
		return fail()
	}
	publishedAt := workDate
	if req.PublishedAt != "" {
		publishedAt, err = helpers.ParseDateInput(req.PublishedAt)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"published_at": "must match date format: 2006-01-02"})
			return fail()
		}
	}
	periodStart, err := helpers.ParseOptionalDate(req.PeriodStart)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"period_start": "must match date format: 2006-01-02"})
		return fail()
	}
	periodEnd, err := helpers.ParseOptionalDate(req.PeriodEnd)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"period_end": "must match date format: 2006-01-02"})
		return fail()
	}

	var image *application.ImageUpload
	closer := func() {}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		uploads, cl := formImages(form.File["image"])
		closer = cl
		if len(uploads) > 0 {
			image = &uploads[0]
		}
	}

	in := application.ProjectInput{
		Title:        req.Title,
		Category:     req.Category,
		Topic:        req.Topic,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		WorkDate:     workDate,
		PublishedAt:  publishedAt,
		SnsPromoText: req.SnsPromoText,
		Role:         req.Role,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		TechStack:    req.TechStack,
		RepoURL:      req.RepoURL,
		DemoURL:      req.DemoURL,
		Visibility:   entity.Visibility(req.Visibility),
		ArtifactIDs:  req.ArtifactIDs,
	}
	return in, image, closer, true
}

func (h *ProjectHandler) Create(c *gin.Context) {
	in, image, closer, ok := h.bind(c)
	if !ok {
		return
	}
	defer closer()

	p, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), in, image)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "project created", nil)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	in, image, closer, ok := h.bind(c)
	if !ok {
		return
	}
	defer closer()

	p, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), in, image)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project updated", nil)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project", nil)
}

func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []entity.Project{}
	}
	response.Success(c, http.StatusOK, items, "projects", nil)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "project deleted", nil)
}
