package repositories

import (
	"errors"
	"time"

	"github.com/anonto42/high-five/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TermsRepository stores the single current terms decision per user
type TermsRepository interface {
	// GetDecision returns nil when the user has not decided yet.
	GetDecision(userID uint) (*models.TermsDecision, error)
	SetDecision(userID uint, state models.TermsState) error
}

type postgresTermsRepository struct {
	db *gorm.DB
}

func NewPostgresTermsRepository(db *gorm.DB) TermsRepository {
	return &postgresTermsRepository{db: db}
}

func (r *postgresTermsRepository) GetDecision(userID uint) (*models.TermsDecision, error) {
	var decision models.TermsDecision
	err := r.db.First(&decision, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &decision, nil
}

// SetDecision upserts the user's current decision in one atomic statement
func (r *postgresTermsRepository) SetDecision(userID uint, state models.TermsState) error {
	decision := models.TermsDecision{
		UserID:    userID,
		State:     state,
		DecidedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "decided_at"}),
	}).Create(&decision).Error
}
