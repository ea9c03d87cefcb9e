package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tasaheel/leads-api/internal/models"
	apperrors "github.com/tasaheel/leads-api/pkg/errors"
	"github.com/tasaheel/leads-api/pkg/logger"
	"go.uber.org/zap"
)

// maxFieldBytes bounds a single text field. File parts are uncapped.
const maxFieldBytes = 1 << 20

// LeadProcessor is implemented by services.LeadService
type LeadProcessor interface {
	ProcessLead(ctx context.Context, sub *models.LeadSubmission) (*models.SendLeadResponse, error)
}

// LeadHandler parses multipart lead submissions into a LeadSubmission and
// hands them to the lead service. Files are streamed straight to the temp
// upload dir under collision-free names; the service owns them from there.
type LeadHandler struct {
	service          LeadProcessor
	uploadDir        string
	maxFilesPerField int
}

func NewLeadHandler(service LeadProcessor, uploadDir string, maxFilesPerField int) *LeadHandler {
	return &LeadHandler{
		service:          service,
		uploadDir:        uploadDir,
		maxFilesPerField: maxFilesPerField,
	}
}

func (h *LeadHandler) SendLead(c *gin.Context) {
	sub, err := h.parseSubmission(c.Request)
	if err != nil {
		// Files saved before the parse failed must not leak.
		if sub != nil {
			h.removeSaved(sub)
		}
		if apperrors.Is(err, apperrors.ErrTooManyFiles) {
			respondError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		if apperrors.Is(err, apperrors.ErrInternal) {
			respondInternalError(c, err)
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	resp, err := h.service.ProcessLead(c.Request.Context(), sub)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Missing source field", err)
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parseSubmission walks the multipart body part by part, so text fields
// keep their receipt order and files stream to disk without buffering.
// The returned submission is non-nil even on error, so the caller can
// delete whatever was already saved.
func (h *LeadHandler) parseSubmission(r *http.Request) (*models.LeadSubmission, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("not a multipart request: %w", err)
	}

	sub := &models.LeadSubmission{
		Fields:      make(map[string]string),
		Attachments: make(map[models.AttachmentCategory][]models.Attachment),
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sub, fmt.Errorf("malformed multipart body: %w", err)
		}

		if part.FileName() == "" {
			if err := h.readField(sub, part); err != nil {
				return sub, err
			}
			continue
		}

		if err := h.saveFile(sub, part); err != nil {
			return sub, err
		}
	}

	sub.Source = sub.Fields["source"]
	return sub, nil
}

func (h *LeadHandler) readField(sub *models.LeadSubmission, part *multipart.Part) error {
	name := part.FormName()

	value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
	if err != nil {
		return fmt.Errorf("failed to read field %s: %w", name, err)
	}

	// First occurrence wins for repeated field names.
	if _, seen := sub.Fields[name]; !seen {
		sub.FieldOrder = append(sub.FieldOrder, name)
		sub.Fields[name] = string(value)
	}
	return nil
}

func (h *LeadHandler) saveFile(sub *models.LeadSubmission, part *multipart.Part) error {
	cat, known := categoryFor(part.FormName())
	if !known {
		// Unknown file fields are drained and dropped, not an error:
		// front-end forms have shipped stray fields before.
		logger.Warn("Ignoring file in unknown field", zap.String("field", part.FormName()))
		_, _ = io.Copy(io.Discard, part)
		return nil
	}

	if len(sub.Attachments[cat]) >= h.maxFilesPerField {
		return apperrors.TooManyFilesError(string(cat), h.maxFilesPerField)
	}

	fileName := filepath.Base(part.FileName())
	dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(fileName))

	out, err := os.Create(dst)
	if err != nil {
		return apperrors.InternalError(fmt.Sprintf("failed to create temp file: %v", err))
	}

	size, err := io.Copy(out, part)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	// Registered even when the copy failed, so the half-written file gets
	// deleted with the rest.
	sub.Attachments[cat] = append(sub.Attachments[cat], models.Attachment{
		Category: cat,
		FileName: fileName,
		Path:     dst,
		Size:     size,
	})

	if err != nil {
		return apperrors.InternalError(fmt.Sprintf("failed to save upload: %v", err))
	}
	return nil
}

// removeSaved deletes temp files for submissions that never reached the
// service (the service does its own cleanup once it takes ownership).
func (h *LeadHandler) removeSaved(sub *models.LeadSubmission) {
	for _, path := range sub.TempPaths() {
		if err := os.Remove(path); err != nil {
			logger.Warn("Failed to delete temp upload", zap.Error(err), zap.String("path", path))
		}
	}
}

func categoryFor(field string) (models.AttachmentCategory, bool) {
	switch models.AttachmentCategory(field) {
	case models.CategoryVisaDocument, models.CategoryPassportImage, models.CategoryRecruitmentForm:
		return models.AttachmentCategory(field), true
	default:
		return "", false
	}
}
