package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/high-five/backend/internal/mailer"
	"github.com/anonto42/high-five/backend/internal/models"
	"github.com/anonto42/high-five/backend/internal/repositories"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Pusher delivers an optional push notification (FCM). A nil Pusher disables
// the channel.
type Pusher interface {
	Push(ctx context.Context, userID uint, title, body string) error
}

// NotificationService is the dispatcher for the example component. The in-app
// notification row is always written; email and push are extra channels that
// consult the recipient's preferences and fail without surfacing errors to
// the sender.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	preferenceRepo   repositories.PreferenceRepository
	userRepo         repositories.UserRepository
	mailer           mailer.Mailer
	pusher           Pusher
	baseURL          string
	siteName         string
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. pusher may be nil.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	preferenceRepo repositories.PreferenceRepository,
	userRepo repositories.UserRepository,
	m mailer.Mailer,
	pusher Pusher,
	baseURL, siteName string,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		userRepo:         userRepo,
		mailer:           m,
		pusher:           pusher,
		baseURL:          baseURL,
		siteName:         siteName,
		logger:           logger.With().Str("component", "notification_service").Logger(),
	}
}

// NotifyHighFive records the in-app notification and then tries the email and
// push channels. Failing to resolve either user's details aborts the extra
// channels silently; the triggering action has already succeeded.
func (s *NotificationService) NotifyHighFive(ctx context.Context, toUserID, fromUserID uint) error {
	notification := &models.Notification{
		Type:        models.NotificationTypeNewHighFive,
		ActorID:     fromUserID,
		RecipientID: toUserID,
	}

	sender, senderErr := s.userRepo.GetUserByID(fromUserID)
	if senderErr == nil {
		notification.Message = fmt.Sprintf("%s sent you a high-five!", sender.Name)
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		return err
	}

	if senderErr != nil {
		s.logger.Warn().Err(senderErr).Uint("from", fromUserID).Msg("could not resolve sender, skipping email")
		return nil
	}
	recipient, err := s.userRepo.GetUserByID(toUserID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("to", toUserID).Msg("could not resolve recipient, skipping email")
		return nil
	}
	if recipient.Email == "" {
		s.logger.Warn().Uint("to", toUserID).Msg("recipient has no email address, skipping email")
		return nil
	}

	// Email is suppressed only when the setting is exactly "no"; anything
	// else, including an absent setting, means send.
	pref, err := s.preferenceRepo.Get(toUserID, models.PrefNewHighFive)
	if err != nil {
		s.logger.Warn().Err(err).Uint("to", toUserID).Msg("could not read notification preference")
	}
	if pref == "no" {
		return nil
	}

	subject := fmt.Sprintf("[%s] %s high-fived you!", s.siteName, sender.Name)
	body := s.highFiveEmailBody(sender, recipient)

	if err := s.mailer.Send(recipient.Email, subject, body); err != nil {
		s.logger.Warn().Err(err).Uint("to", toUserID).Msg("failed to send high-five email")
	}

	if s.pusher != nil {
		title := fmt.Sprintf("%s high-fived you!", sender.Name)
		if err := s.pusher.Push(ctx, toUserID, title, notification.Message); err != nil {
			s.logger.Warn().Err(err).Uint("to", toUserID).Msg("failed to push high-five notification")
		}
	}

	return nil
}

func (s *NotificationService) highFiveEmailBody(sender, recipient *models.User) string {
	senderProfileLink := sender.ProfileURL(s.baseURL)
	senderHighFiveLink := fmt.Sprintf("%s/users/%d/example/screen-one", s.baseURL, sender.ID)
	settingsLink := fmt.Sprintf("%s/settings/notifications", s.baseURL)

	body := fmt.Sprintf(`%s sent you a high-five! Why not send one back?

To see %s's profile: %s

To send %s a high five: %s

---------------------
`, sender.Name, sender.Name, senderProfileLink, sender.Name, senderHighFiveLink)
	body += fmt.Sprintf("To disable these notifications please log in and go to: %s", settingsLink)
	return body
}

// FormatHighFiveNotifications renders the recipient's unread high-five
// notifications for display. A single unread notification names its sender
// and links to the sender's profile; more than one collapses into the grouped
// "multi-five" form linking to the recipient's own screen.
func (s *NotificationService) FormatHighFiveNotifications(ctx context.Context, recipientID uint) (*models.FormattedNotification, error) {
	count, err := s.notificationRepo.GetUnreadCountByType(recipientID, models.NotificationTypeNewHighFive)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &models.FormattedNotification{}, nil
	}

	if count > 1 {
		return &models.FormattedNotification{
			Text:  fmt.Sprintf("%d new high-fives, multi-five!", count),
			Link:  fmt.Sprintf("%s/users/%d/example/screen-one", s.baseURL, recipientID),
			Count: count,
		}, nil
	}

	latest, err := s.notificationRepo.GetLatestUnreadByType(recipientID, models.NotificationTypeNewHighFive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.FormattedNotification{}, nil
		}
		return nil, err
	}

	formatted := &models.FormattedNotification{Count: 1}
	actor, err := s.userRepo.GetUserByID(latest.ActorID)
	if err != nil {
		formatted.Text = "You received a new high-five!"
		formatted.Link = fmt.Sprintf("%s/users/%d/example/screen-one", s.baseURL, recipientID)
		return formatted, nil
	}
	formatted.Text = fmt.Sprintf("%s sent you a high-five!", actor.Name)
	formatted.Link = actor.ProfileURL(s.baseURL)
	return formatted, nil
}

// MarkScreenNotificationsRead clears the user's unread high-five
// notifications, called when they visit the owning screen.
func (s *NotificationService) MarkScreenNotificationsRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkReadByType(userID, models.NotificationTypeNewHighFive)
}
