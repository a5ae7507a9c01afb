package repositories

import (
	"errors"

	"github.com/anonto42/high-five/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HighFiveRepository defines the interface for the high-five ledger.
// The ledger is a set keyed by (recipient, sender): duplicate sends must not
// create a second row, and the uniqueness lives in the storage layer.
type HighFiveRepository interface {
	// CreateHighFive inserts the pair and reports whether a new row was
	// written. An already-present pair returns created=false with no error.
	CreateHighFive(highFive *models.HighFive) (created bool, err error)
	HasHighFived(recipientID, senderID uint) (bool, error)
	GetHighFiversFor(recipientID uint) ([]uint, error)
	GetHighFivesFor(recipientID uint) ([]models.HighFive, error)
	DeleteAllForUser(userID uint) error
}

// PostgresHighFiveRepository implements HighFiveRepository for PostgreSQL
type PostgresHighFiveRepository struct {
	db *gorm.DB
}

// NewPostgresHighFiveRepository creates a new PostgresHighFiveRepository
func NewPostgresHighFiveRepository(db *gorm.DB) *PostgresHighFiveRepository {
	return &PostgresHighFiveRepository{db: db}
}

// CreateHighFive appends a sender to the recipient's ledger. The insert is a
// single atomic statement with ON CONFLICT DO NOTHING, so concurrent sends of
// the same pair collapse into one row instead of racing.
func (r *PostgresHighFiveRepository) CreateHighFive(highFive *models.HighFive) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipient_id"}, {Name: "sender_id"}},
		DoNothing: true,
	}).Create(highFive)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresHighFiveRepository) HasHighFived(recipientID, senderID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.HighFive{}).Where("recipient_id = ? AND sender_id = ?", recipientID, senderID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetHighFiversFor returns the sender IDs for a recipient in insertion order
func (r *PostgresHighFiveRepository) GetHighFiversFor(recipientID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.HighFive{}).Where("recipient_id = ?", recipientID).Order("id ASC").Pluck("sender_id", &ids).Error
	return ids, err
}

// GetHighFivesFor returns the full ledger rows for a recipient in insertion order
func (r *PostgresHighFiveRepository) GetHighFivesFor(recipientID uint) ([]models.HighFive, error) {
	var highFives []models.HighFive
	err := r.db.Where("recipient_id = ?", recipientID).Order("id ASC").Find(&highFives).Error
	return highFives, err
}

// DeleteAllForUser removes ledger rows where the user is sender or recipient
func (r *PostgresHighFiveRepository) DeleteAllForUser(userID uint) error {
	return r.db.Where("recipient_id = ? OR sender_id = ?", userID, userID).Delete(&models.HighFive{}).Error
}
