package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/services"
)

type SheetHandler struct {
	log          *logger.Logger
	sheetService services.SheetService
}

func NewSheetHandler(log *logger.Logger, sheetService services.SheetService) *SheetHandler {
	return &SheetHandler{
		log:          log.With("handler", "SheetHandler"),
		sheetService: sheetService,
	}
}

func (h *SheetHandler) Upload(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.sheetService.Upload(c.Request.Context(), input)
	if err != nil {
		status, code := uploadErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("Upload failed", "filename", input.Filename, "error", err)
		}
		RespondError(c, status, code, err)
		return
	}
	RespondOK(c, result)
}

func (h *SheetHandler) UploadAsync(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}
	job, err := h.sheetService.EnqueueUpload(c.Request.Context(), input)
	if err != nil {
		status, code := uploadErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("UploadAsync failed", "filename", input.Filename, "error", err)
		}
		RespondError(c, status, code, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": "extraction started",
		"job_id":  job.ID,
	})
}

// GetJobStatus treats an unparseable id the same as a missing job, so
// probing reveals nothing.
func (h *SheetHandler) GetJobStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "job_not_found", services.ErrJobNotFound)
		return
	}
	view, err := h.sheetService.JobStatus(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			RespondError(c, http.StatusNotFound, "job_not_found", err)
			return
		}
		h.log.Error("GetJobStatus failed", "job_id", jobID, "error", err)
		RespondError(c, http.StatusInternalServerError, "job_status_failed", err)
		return
	}
	RespondOK(c, view)
}

func (h *SheetHandler) ListSheets(c *gin.Context) {
	sheets, err := h.sheetService.ListSheets(c.Request.Context())
	if err != nil {
		h.log.Error("ListSheets failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_sheets_failed", err)
		return
	}
	RespondOK(c, gin.H{"sheets": sheets})
}

func (h *SheetHandler) readUpload(c *gin.Context) (services.UploadInput, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("multipart field 'file' is required"))
		return services.UploadInput{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("failed to read uploaded file"))
		return services.UploadInput{}, false
	}
	return services.UploadInput{Filename: header.Filename, Data: data}, true
}

func uploadErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, "upload_too_large"
	case errors.Is(err, services.ErrUploadEmpty),
		errors.Is(err, services.ErrUploadBadType),
		errors.Is(err, services.ErrUnreadableUpload):
		return http.StatusBadRequest, "upload_invalid"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
