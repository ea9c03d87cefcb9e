package services

import (
	"context"
	"fmt"
	"os"

	"github.com/tasaheel/leads-api/internal/compose"
	"github.com/tasaheel/leads-api/internal/models"
	apperrors "github.com/tasaheel/leads-api/pkg/errors"
	"github.com/tasaheel/leads-api/pkg/logger"
	"github.com/tasaheel/leads-api/pkg/metrics"
	"go.uber.org/zap"
)

// LeadService relays one lead submission to the destination chat: every
// attachment as a document, then one summary message. It owns the
// submission's temp files and deletes them when the request is done,
// whichever way it ended.
type LeadService struct {
	sender ChatSender
}

// NewLeadService creates a new lead service instance
func NewLeadService(sender ChatSender) *LeadService {
	return &LeadService{sender: sender}
}

// ProcessLead runs the full pipeline for one submission. Per-file upload
// failures are converted to outcome data and never fail the request; a
// failed summary send does.
func (s *LeadService) ProcessLead(ctx context.Context, sub *models.LeadSubmission) (*models.SendLeadResponse, error) {
	// Temp files are registered for deletion before anything else can
	// fail: no attachment that reached this point may outlive the request.
	defer s.cleanup(sub.TempPaths())

	if sub.Source == "" {
		metrics.LeadSubmissions.WithLabelValues("missing_source").Inc()
		return nil, apperrors.InvalidInputError("source", "missing")
	}

	outcomes := s.uploadAttachments(ctx, sub)

	text := compose.Message(sub, outcomes)
	if err := s.sender.SendMessage(ctx, text); err != nil {
		metrics.LeadSubmissions.WithLabelValues("notify_failed").Inc()
		logger.Error("Failed to send lead summary",
			zap.Error(err),
			zap.String("source", sub.Source),
		)
		return nil, apperrors.NotificationError(err)
	}

	metrics.LeadSubmissions.WithLabelValues("success").Inc()
	logger.Info("Lead relayed",
		zap.String("source", sub.Source),
		zap.Int("attachments", len(sub.TempPaths())),
	)

	return &models.SendLeadResponse{
		Success: true,
		Message: "Processed successfully",
	}, nil
}

// uploadAttachments delivers every attachment, one at a time, in receipt
// order within each category. Sequential on purpose: it bounds load on the
// Bot API and keeps outcome order deterministic for the summary text.
func (s *LeadService) uploadAttachments(ctx context.Context, sub *models.LeadSubmission) map[models.AttachmentCategory][]models.UploadOutcome {
	outcomes := make(map[models.AttachmentCategory][]models.UploadOutcome)
	client := sub.ClientName()

	for _, cat := range models.Categories() {
		for _, att := range sub.Attachments[cat] {
			caption := fmt.Sprintf("📄 %s\n👤 عميل: %s", cat.Label(), client)

			err := s.sender.SendDocument(ctx, att.Path, att.FileName, caption)
			if err != nil {
				metrics.DocumentUploads.WithLabelValues(string(cat), "error").Inc()
				logger.Error("Attachment upload failed",
					zap.Error(err),
					zap.String("category", string(cat)),
					zap.String("file_name", att.FileName),
					zap.Int64("size_bytes", att.Size),
				)
			} else {
				metrics.DocumentUploads.WithLabelValues(string(cat), "success").Inc()
			}

			outcomes[cat] = append(outcomes[cat], models.UploadOutcome{
				FileName: att.FileName,
				OK:       err == nil,
			})
		}
	}

	return outcomes
}

// cleanup best-effort deletes the request's temp files. Failures are
// logged and swallowed: the response has already been decided.
func (s *LeadService) cleanup(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			metrics.TempFileCleanups.WithLabelValues("error").Inc()
			logger.Warn("Failed to delete temp upload", zap.Error(err), zap.String("path", path))
			continue
		}
		metrics.TempFileCleanups.WithLabelValues("success").Inc()
	}
}
