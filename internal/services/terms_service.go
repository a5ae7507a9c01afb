package services

import (
	"context"
	"fmt"

	"github.com/anonto42/high-five/backend/internal/models"
	"github.com/anonto42/high-five/backend/internal/repositories"
	"github.com/rs/zerolog"
)

// TermsService owns the accept/reject terms workflow. The authoritative state
// is a single per-user decision row; the activity stream mirrors it, with the
// invariant that accepted_terms and rejected_terms entries never coexist for
// one user. Accepting retracts all rejected_terms entries and vice versa.
// A repeat accept (or reject) appends another entry of the same kind.
type TermsService struct {
	termsRepo    repositories.TermsRepository
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
	logger       zerolog.Logger
}

// NewTermsService creates a new TermsService
func NewTermsService(
	termsRepo repositories.TermsRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) *TermsService {
	return &TermsService{
		termsRepo:    termsRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		logger:       logger.With().Str("component", "terms_service").Logger(),
	}
}

// AcceptTerms records the user's acceptance. Valid from any state, including
// when the user already accepted.
func (s *TermsService) AcceptTerms(ctx context.Context, userID uint) error {
	if err := s.termsRepo.SetDecision(userID, models.TermsAccepted); err != nil {
		return err
	}
	s.recordDecisionActivity(ctx, userID, models.ActivityAcceptedTerms, models.ActivityRejectedTerms,
		"%s accepted the really exciting terms and conditions!")
	return nil
}

// RejectTerms records the user's rejection, even after a prior acceptance
func (s *TermsService) RejectTerms(ctx context.Context, userID uint) error {
	if err := s.termsRepo.SetDecision(userID, models.TermsRejected); err != nil {
		return err
	}
	s.recordDecisionActivity(ctx, userID, models.ActivityRejectedTerms, models.ActivityAcceptedTerms,
		"%s rejected the really exciting terms and conditions.")
	return nil
}

// GetDecision returns the user's current decision, or nil before any decision
func (s *TermsService) GetDecision(ctx context.Context, userID uint) (*models.TermsDecision, error) {
	return s.termsRepo.GetDecision(userID)
}

// recordDecisionActivity appends the new entry and retracts the opposing
// kind. Stream updates are best effort: the decision row is already saved and
// a stream failure must not fail the action.
func (s *TermsService) recordDecisionActivity(ctx context.Context, userID uint, record, retract models.ActivityType, format string) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("could not resolve user for terms activity")
		return
	}

	if _, err := s.activityRepo.RecordActivity(ctx, &models.ActivityEntry{
		UserID: userID,
		Type:   record,
		Action: fmt.Sprintf(format, user.Name),
	}); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Str("type", string(record)).
			Msg("failed to record terms activity")
	}

	if err := s.activityRepo.RetractActivity(ctx, userID, retract); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Str("type", string(retract)).
			Msg("failed to retract opposing terms activity")
	}
}
