package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/services"
)

type ClassificationHandler struct {
	log            *logger.Logger
	classification services.ClassificationService
	maxUploadBytes int64
}

func NewClassificationHandler(log *logger.Logger, classification services.ClassificationService, maxUploadBytes int64) *ClassificationHandler {
	return &ClassificationHandler{
		log:            log.With("handler", "ClassificationHandler"),
		classification: classification,
		maxUploadBytes: maxUploadBytes,
	}
}

// Classify accepts a multipart upload under the "photo" field, runs the
// classification pipeline and returns category, guidance and reward outcome.
func (ch *ClassificationHandler) Classify(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		ch.log.Warn("Rejected upload without photo field", "error", err)
		RespondError(c, http.StatusBadRequest, "missing_photo", fmt.Errorf("missing 'photo' form field"))
		return
	}
	if ch.maxUploadBytes > 0 && fileHeader.Size > ch.maxUploadBytes {
		ch.log.Warn("Rejected oversized upload", "size", fileHeader.Size, "max", ch.maxUploadBytes)
		RespondError(c, http.StatusRequestEntityTooLarge, "photo_too_large",
			fmt.Errorf("photo exceeds %d bytes", ch.maxUploadBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_photo", err)
		return
	}
	defer file.Close()

	var reader io.Reader = file
	if ch.maxUploadBytes > 0 {
		reader = io.LimitReader(file, ch.maxUploadBytes+1)
	}
	imageBytes, err := io.ReadAll(reader)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_photo", err)
		return
	}
	if ch.maxUploadBytes > 0 && int64(len(imageBytes)) > ch.maxUploadBytes {
		ch.log.Warn("Rejected oversized upload", "size", len(imageBytes), "max", ch.maxUploadBytes)
		RespondError(c, http.StatusRequestEntityTooLarge, "photo_too_large",
			fmt.Errorf("photo exceeds %d bytes", ch.maxUploadBytes))
		return
	}

	result, err := ch.classification.ClassifyImage(c.Request.Context(), imageBytes)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "classification_failed", err)
		return
	}
	RespondOK(c, result)
}
