package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/pkg/response"
)

// respondErr maps service errors onto HTTP statuses. Ownership failures and
// missing rows both answer the same 403 so responses never confirm whether a
// foreign id exists.
func respondErr(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrUnauthenticated), errors.Is(err, application.ErrInvalidLogin):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrNotOwned):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrOrderSetMismatch),
		errors.Is(err, application.ErrGoalLimit),
		errors.Is(err, application.ErrImageRequired),
		errors.Is(err, application.ErrInvalidImage):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrStoreUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// formImages turns multipart file headers into service uploads. The returned
// closer must run after the service call so readers stay open while storage
// streams them.
func formImages(headers []*multipart.FileHeader) ([]application.ImageUpload, func()) {
	var uploads []application.ImageUpload
	var opened []multipart.File
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		opened = append(opened, f)
		uploads = append(uploads, application.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}
	closer := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	return uploads, closer
}
