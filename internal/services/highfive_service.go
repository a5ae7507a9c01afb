package services

import (
	"context"
	"fmt"

	"github.com/anonto42/high-five/backend/internal/models"
	"github.com/anonto42/high-five/backend/internal/repositories"
	"github.com/rs/zerolog"
)

// SendResult is the outcome of a high-five send
type SendResult int

const (
	HighFiveSent SendResult = iota
	HighFiveAlreadySent
)

// HighFiveNotifier dispatches the in-app/email notification for a sent
// high-five. Satisfied by NotificationService.
type HighFiveNotifier interface {
	NotifyHighFive(ctx context.Context, toUserID, fromUserID uint) error
}

// HighFiveService owns the high-five ledger workflow: the ledger write itself,
// plus the activity entry and notification that follow a successful send.
// Activity and notification are independent observers of the write; if either
// fails the ledger row stays, the error is logged and the send still counts.
type HighFiveService struct {
	highFiveRepo  repositories.HighFiveRepository
	activityRepo  repositories.ActivityRepository
	userRepo      repositories.UserRepository
	notifier      HighFiveNotifier
	dedupActivity bool
	logger        zerolog.Logger
}

// NewHighFiveService creates a new HighFiveService. When dedupActivity is true
// a repeat send for an existing (sender, recipient) pair does not append a
// second activity entry; the default false keeps every send a distinct event.
func NewHighFiveService(
	highFiveRepo repositories.HighFiveRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	notifier HighFiveNotifier,
	dedupActivity bool,
	logger zerolog.Logger,
) *HighFiveService {
	return &HighFiveService{
		highFiveRepo:  highFiveRepo,
		activityRepo:  activityRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		dedupActivity: dedupActivity,
		logger:        logger.With().Str("component", "highfive_service").Logger(),
	}
}

// SendHighFive appends the sender to the recipient's ledger. A duplicate send
// is not an error: it returns HighFiveAlreadySent and leaves the ledger
// untouched. An activity entry is still recorded per send unless dedupActivity
// suppresses repeats; the notification fires only on a fresh ledger write.
// Self-targeting is the screen controller's concern, not the ledger's.
func (s *HighFiveService) SendHighFive(ctx context.Context, toUserID, fromUserID uint) (SendResult, error) {
	created, err := s.highFiveRepo.CreateHighFive(&models.HighFive{
		RecipientID: toUserID,
		SenderID:    fromUserID,
	})
	if err != nil {
		return 0, err
	}

	if err := s.recordHighFiveActivity(ctx, toUserID, fromUserID); err != nil {
		s.logger.Warn().Err(err).Uint("to", toUserID).Uint("from", fromUserID).
			Msg("failed to record high-five activity")
	}

	if !created {
		return HighFiveAlreadySent, nil
	}

	if err := s.notifier.NotifyHighFive(ctx, toUserID, fromUserID); err != nil {
		s.logger.Warn().Err(err).Uint("to", toUserID).Uint("from", fromUserID).
			Msg("failed to dispatch high-five notification")
	}

	return HighFiveSent, nil
}

// GetHighFivesFor returns the sender IDs in the recipient's ledger, oldest first
func (s *HighFiveService) GetHighFivesFor(ctx context.Context, userID uint) ([]uint, error) {
	return s.highFiveRepo.GetHighFiversFor(userID)
}

func (s *HighFiveService) recordHighFiveActivity(ctx context.Context, toUserID, fromUserID uint) error {
	if s.dedupActivity {
		exists, err := s.activityRepo.HasEntry(ctx, fromUserID, models.ActivityNewHighFive, toUserID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	sender, err := s.userRepo.GetUserByID(fromUserID)
	if err != nil {
		return err
	}
	recipient, err := s.userRepo.GetUserByID(toUserID)
	if err != nil {
		return err
	}

	_, err = s.activityRepo.RecordActivity(ctx, &models.ActivityEntry{
		UserID: fromUserID,
		ItemID: toUserID,
		Type:   models.ActivityNewHighFive,
		Action: fmt.Sprintf("%s high-fived %s!", sender.Name, recipient.Name),
	})
	return err
}
