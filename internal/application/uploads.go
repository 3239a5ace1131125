package application

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/storage"
)

// MaxArtifactImages caps uploads per artifact request; extra files are
// dropped silently, matching the behavior of the dashboard form.
const MaxArtifactImages = 3

// ImageUpload carries one uploaded file from the HTTP layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

func (u ImageUpload) isImage() bool {
	return strings.HasPrefix(u.ContentType, "image/") && u.Size > 0
}

func objectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 8 {
		ext = ""
	}
	return prefix + "/" + time.Now().UTC().Format("20060102") + "-" + uuid.NewString() + ext
}

// saveArtifactImages uploads at most MaxArtifactImages image files and
// returns attachment rows for the ones that stuck. Non-image files and
// individual upload failures are skipped, never fatal.
func saveArtifactImages(ctx context.Context, store storage.ObjectStorage, logger *logrus.Logger, files []ImageUpload) []entity.ArtifactAttachment {
	if store == nil {
		return nil
	}
	var out []entity.ArtifactAttachment
	for _, f := range files {
		if len(out) >= MaxArtifactImages {
			break
		}
		if !f.isImage() {
			continue
		}
		url, err := store.Put(ctx, objectKey("artifacts", f.Filename), f.Reader, f.Size, f.ContentType)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("file", f.Filename).Warn("attachment upload failed, skipping")
			}
			continue
		}
		out = append(out, entity.ArtifactAttachment{
			ID:        uuid.NewString(),
			Kind:      entity.AttachmentImage,
			PathOrURL: url,
			MimeType:  f.ContentType,
			Size:      f.Size,
			CreatedAt: time.Now(),
		})
	}
	return out
}

// saveProjectImage uploads the single representative project image. Unlike
// artifact attachments a non-image file is an error here, because the project
// card cannot render without one.
func saveProjectImage(ctx context.Context, store storage.ObjectStorage, f *ImageUpload) (string, error) {
	if f == nil {
		return "", nil
	}
	if !f.isImage() {
		return "", ErrInvalidImage
	}
	if store == nil {
		return "", ErrStoreUnavailable
	}
	url, err := store.Put(ctx, objectKey("projects", f.Filename), f.Reader, f.Size, f.ContentType)
	if err != nil {
		return "", err
	}
	return url, nil
}
