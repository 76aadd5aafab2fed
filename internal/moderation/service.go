// Package moderation handles user reports against reply authors and the
// automatic suspensions they can trigger.
package moderation

import (
	"errors"
	"fmt"
	"time"

	"claimboard/backend/internal/analysis"
	"claimboard/backend/internal/board"
	"claimboard/backend/internal/config"
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Store is the slice of the storage layer moderation needs.
type Store interface {
	GetReplyByID(id string) (*models.Reply, error)
	GetThreadByReplyID(replyID string) (*models.Thread, error)
	GetThreadMessages(threadID string) ([]models.Message, error)
	SaveReport(report *models.Report) error
	ListReportsByStatus(status string) ([]models.Report, error)
	GetReportsForUser(targetID string, since time.Time) ([]models.Report, error)
	SuspendUser(userID string, duration time.Duration) error
}

// Service handles the business logic for reports.
type Service struct {
	Storage Store

	log *logger.Logger
}

// NewService creates a new moderation service.
func NewService(s Store, log *logger.Logger) *Service {
	return &Service{Storage: s, log: log.With("service", "ModerationService")}
}

// FileReport records a report by actorID against the author of a reply,
// snapshotting the reply's thread history for moderator review, then
// re-evaluates the target for suspension.
func (s *Service) FileReport(actorID, replyID, reason string) (*models.Report, error) {
	reply, err := s.Storage.GetReplyByID(replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, board.ErrNotFound
		}
		return nil, err
	}
	if reply.AuthorID == actorID {
		return nil, fmt.Errorf("%w: cannot report yourself", board.ErrValidation)
	}

	report := &models.Report{
		ReporterID: actorID,
		TargetID:   reply.AuthorID,
		ReplyID:    replyID,
		Reason:     reason,
		MessageLog: s.snapshotThread(replyID),
	}
	if err := s.Storage.SaveReport(report); err != nil {
		return nil, err
	}
	s.log.Info("Report filed", "report_id", report.ID, "target_id", reply.AuthorID, "reason", reason)

	if err := s.checkForSuspension(reply.AuthorID); err != nil {
		s.log.Warn("Suspension check failed", "target_id", reply.AuthorID, "error", err)
	}
	return report, nil
}

// snapshotThread captures the tail of the reply's private thread as
// "sender: body" lines. Missing threads or history errors produce an
// empty snapshot, never a failed report.
func (s *Service) snapshotThread(replyID string) pq.StringArray {
	thread, err := s.Storage.GetThreadByReplyID(replyID)
	if err != nil {
		return nil
	}
	messages, err := s.Storage.GetThreadMessages(thread.ID)
	if err != nil {
		return nil
	}
	if len(messages) > config.ReportSnapshotMessages {
		messages = messages[len(messages)-config.ReportSnapshotMessages:]
	}
	log := make(pq.StringArray, 0, len(messages))
	for _, m := range messages {
		log = append(log, m.SenderID+": "+m.Body)
	}
	return log
}

// checkForSuspension suspends the user when the weighted sum of reports
// inside the window crosses the threshold.
func (s *Service) checkForSuspension(userID string) error {
	reports, err := s.Storage.GetReportsForUser(userID, time.Now().Add(-config.SuspendWindow))
	if err != nil {
		return err
	}

	total := 0
	for _, r := range reports {
		total += analysis.GetWeight(r.Reason)
	}
	if total < config.SuspendThresholdWeight {
		return nil
	}

	if err := s.Storage.SuspendUser(userID, config.SuspendDuration); err != nil {
		return err
	}
	s.log.Info("User suspended", "user_id", userID, "weight", total)
	return nil
}

// OpenReports lists unprocessed reports, oldest first. Used by the admin
// CLI.
func (s *Service) OpenReports() ([]models.Report, error) {
	return s.Storage.ListReportsByStatus(models.ReportStatusNew)
}
