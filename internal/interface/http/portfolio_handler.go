package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/pkg/response"
)

// PortfolioHandler serves the unauthenticated visitor routes.
type PortfolioHandler struct {
	Svc    *application.PortfolioService
	Logger *logrus.Logger
}

func NewPortfolioHandler(svc *application.PortfolioService, logger *logrus.Logger) *PortfolioHandler {
	return &PortfolioHandler{Svc: svc, Logger: logger}
}

func (h *PortfolioHandler) Portfolio(c *gin.Context) {
	view, err := h.Svc.Portfolio(c.Request.Context())
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "portfolio", nil)
}

func (h *PortfolioHandler) Projects(c *gin.Context) {
	items, err := h.Svc.PublicProjects(c.Request.Context())
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "public projects", nil)
}

func (h *PortfolioHandler) Project(c *gin.Context) {
	view, err := h.Svc.PublicProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "project", nil)
}

func (h *PortfolioHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	hits, err := h.Svc.SearchArtifacts(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
