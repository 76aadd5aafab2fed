package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"claimboard/backend/internal/config"
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"
	"claimboard/backend/internal/storage"

	"gorm.io/gorm"
)

// Service implements the discussion operations over the storage layer.
type Service struct {
	Storage storage.Storage

	log *logger.Logger
}

// NewService creates the board service.
func NewService(s storage.Storage, log *logger.Logger) *Service {
	return &Service{Storage: s, log: log.With("service", "BoardService")}
}

// translate maps storage errors onto the board taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}

// requireActive fails with ErrForbidden when the actor is suspended.
func (s *Service) requireActive(actorID string) error {
	suspended, err := s.Storage.IsUserSuspended(actorID)
	if err != nil {
		s.log.Warn("Suspension check failed, allowing action", "actor_id", actorID, "error", err)
		return nil
	}
	if suspended {
		return fmt.Errorf("%w: account suspended", ErrForbidden)
	}
	return nil
}

// CreateClaim validates and stores a new claim for the actor.
func (s *Service) CreateClaim(actorID, text, claimType string) (*models.Claim, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: claim text is empty", ErrValidation)
	}
	if utf8.RuneCountInString(text) > config.MaxClaimTextLen {
		return nil, fmt.Errorf("%w: claim text exceeds %d characters", ErrValidation, config.MaxClaimTextLen)
	}
	if !models.ValidClaimType(claimType) {
		return nil, fmt.Errorf("%w: unknown claim type %q", ErrValidation, claimType)
	}

	claim := &models.Claim{
		Text:      text,
		ClaimType: claimType,
		AuthorID:  actorID,
	}
	if err := s.Storage.SaveClaim(claim); err != nil {
		return nil, translate(err)
	}
	s.log.Info("Claim created", "claim_id", claim.ID, "author_id", actorID)
	return claim, nil
}

// GetClaim returns a claim with its replies.
func (s *Service) GetClaim(claimID string) (*models.Claim, error) {
	claim, err := s.Storage.GetClaimWithReplies(claimID)
	if err != nil {
		return nil, translate(err)
	}
	return claim, nil
}

// ListClaims returns all claims, newest first.
func (s *Service) ListClaims() ([]models.Claim, error) {
	claims, err := s.Storage.ListClaims()
	if err != nil {
		return nil, translate(err)
	}
	return claims, nil
}

// DeleteClaim removes a claim and everything hanging off it. Only the
// author may delete.
func (s *Service) DeleteClaim(actorID, claimID string) error {
	claim, err := s.Storage.GetClaimByID(claimID)
	if err != nil {
		return translate(err)
	}
	if claim.AuthorID != actorID {
		return fmt.Errorf("%w: only the author may delete a claim", ErrForbidden)
	}
	if err := s.Storage.DeleteClaim(claimID); err != nil {
		return translate(err)
	}
	s.log.Info("Claim deleted", "claim_id", claimID, "author_id", actorID)
	return nil
}

// CreateReply validates and stores a reply against a claim, provisioning
// the private thread between the claim's author and the reply's author as
// part of the same unit of work. A claim author replying to their own
// claim is allowed; the thread then has one effective participant.
func (s *Service) CreateReply(actorID, claimID, text, stance string) (*models.Reply, *models.Thread, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, fmt.Errorf("%w: reply text is empty", ErrValidation)
	}
	if utf8.RuneCountInString(text) > config.MaxClaimTextLen {
		return nil, nil, fmt.Errorf("%w: reply text exceeds %d characters", ErrValidation, config.MaxClaimTextLen)
	}
	if !models.ValidStance(stance) {
		return nil, nil, fmt.Errorf("%w: unknown stance %q", ErrValidation, stance)
	}

	reply := &models.Reply{
		ClaimID:  claimID,
		Text:     text,
		Stance:   stance,
		Status:   models.StatusPending,
		AuthorID: actorID,
	}
	thread, err := s.Storage.CreateReplyWithThread(reply)
	if err != nil {
		return nil, nil, translate(err)
	}
	s.log.Info("Reply created", "reply_id", reply.ID, "claim_id", claimID, "thread_id", thread.ID)
	return reply, thread, nil
}

// AcceptReply moves a pending reply to accepted. Only the parent claim's
// author may transition a reply. Accepting an already-accepted reply is a
// no-op; flipping a rejected reply is a conflict.
func (s *Service) AcceptReply(actorID, replyID string) (*models.Reply, error) {
	return s.transition(actorID, replyID, models.StatusAccepted, nil)
}

// RejectReply moves a pending reply to rejected, recording an optional
// reason. An empty reason is stored as absent. The reason is public to
// every reader of the claim.
func (s *Service) RejectReply(actorID, replyID, reason string) (*models.Reply, error) {
	var stored *string
	if r := strings.TrimSpace(reason); r != "" {
		stored = &r
	}
	return s.transition(actorID, replyID, models.StatusRejected, stored)
}

func (s *Service) transition(actorID, replyID, status string, reason *string) (*models.Reply, error) {
	reply, err := s.Storage.GetReplyByID(replyID)
	if err != nil {
		return nil, translate(err)
	}
	claim, err := s.Storage.GetClaimByID(reply.ClaimID)
	if err != nil {
		return nil, translate(err)
	}
	if claim.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the claim author may resolve replies", ErrForbidden)
	}

	if reply.Terminal() {
		if reply.Status == status {
			// Repeat of the same resolution; nothing to do.
			return reply, nil
		}
		return nil, fmt.Errorf("%w: reply already %s", ErrConflict, reply.Status)
	}

	if err := s.Storage.UpdateReplyStatus(replyID, status, reason); err != nil {
		return nil, translate(err)
	}
	reply.Status = status
	reply.RejectionReason = reason
	s.log.Info("Reply resolved", "reply_id", replyID, "status", status)
	return reply, nil
}

// Thread returns the thread iff the actor is one of its participants.
// This is the single authorization point for thread reads, sends, and
// subscriptions.
func (s *Service) Thread(actorID, threadID string) (*models.Thread, error) {
	thread, err := s.Storage.GetThreadByID(threadID)
	if err != nil {
		return nil, translate(err)
	}
	if !thread.HasParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a thread participant", ErrForbidden)
	}
	return thread, nil
}

// ThreadMessages returns the full message history of a thread, oldest
// first, for a participant.
func (s *Service) ThreadMessages(actorID, threadID string) ([]models.Message, error) {
	if _, err := s.Thread(actorID, threadID); err != nil {
		return nil, err
	}
	messages, err := s.Storage.GetThreadMessages(threadID)
	if err != nil {
		return nil, translate(err)
	}
	return messages, nil
}

// SendMessage appends a message to a thread as the actor and publishes it
// to the live feed. Publish failures degrade delivery but never fail the
// send: the message is already persisted and shows up on the next history
// read.
func (s *Service) SendMessage(actorID, threadID, body string) (*models.Message, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if _, err := s.Thread(actorID, threadID); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", ErrValidation)
	}

	msg := &models.Message{
		ThreadID: threadID,
		SenderID: actorID,
		Body:     body,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, translate(err)
	}

	if err := s.Storage.PublishThreadEvent(models.MessageEvent(msg)); err != nil {
		s.log.Warn("Failed to publish message event", "thread_id", threadID, "error", err)
	}
	return msg, nil
}
