package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/imaging"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const maxUploadBytes = 10 << 20

type GalleryHandler struct {
	db    *gorm.DB
	store storage.Store
	audit *audit.Dispatcher
}

func NewGalleryHandler(db *gorm.DB, store storage.Store, audit *audit.Dispatcher) *GalleryHandler {
	return &GalleryHandler{db: db, store: store, audit: audit}
}

func (h *GalleryHandler) List(c *gin.Context) {
	var images []models.GalleryImage
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, images)
}

// Upload takes multipart "image" (JPEG/PNG/WebP) and optional "caption".
func (h *GalleryHandler) Upload(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Upload an image in the \"image\" field.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	img, err := imaging.ToWebP(f, imaging.MaxWidth)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Only JPEG, PNG and WebP images are accepted.")
			return
		}
		writeError(c, err)
		return
	}

	key := fmt.Sprintf("gallery/%s.webp", uuid.NewString())
	url, err := h.store.Put(c.Request.Context(), key, img.Data, "image/webp")
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			writeError(c, httperr.ErrBusinessMsg("storage_not_configured", "Image storage is not configured."))
			return
		}
		writeError(c, err)
		return
	}

	row := models.GalleryImage{
		Key:     key,
		URL:     url,
		Caption: strings.TrimSpace(c.PostForm("caption")),
		Width:   img.Width,
		Height:  img.Height,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		// don't leave an orphaned blob behind
		if delErr := h.store.Delete(c.Request.Context(), key); delErr != nil {
			logger.Log.Warn("remove orphaned gallery blob", zap.String("key", key), zap.Error(delErr))
		}
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "gallery_image_uploaded",
		Entity:   "gallery_image",
		EntityID: &row.ID,
		Metadata: map[string]any{"key": key, "bytes": len(img.Data)},
	})

	c.JSON(http.StatusCreated, row)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var row models.GalleryImage
	if err := h.db.WithContext(c.Request.Context()).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "image_not_found", "Image not found.")
			return
		}
		writeError(c, err)
		return
	}

	if err := h.store.Delete(c.Request.Context(), row.Key); err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		logger.Log.Warn("delete gallery blob", zap.String("key", row.Key), zap.Error(err))
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&row).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "gallery_image_deleted",
		Entity:   "gallery_image",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
