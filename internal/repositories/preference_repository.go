package repositories

import (
	"errors"

	"github.com/anonto42/high-five/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository defines the interface for per-user settings
type PreferenceRepository interface {
	// Get returns the stored value for (userID, key), or "" when absent.
	Get(userID uint, key string) (string, error)
	Set(userID uint, key, value string) error
	GetAllForUser(userID uint) (map[string]string, error)
	DeleteAllForUser(userID uint) error
}

type postgresPreferenceRepository struct {
	db *gorm.DB
}

func NewPostgresPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &postgresPreferenceRepository{db: db}
}

func (r *postgresPreferenceRepository) Get(userID uint, key string) (string, error) {
	var pref models.NotificationPreference
	err := r.db.Where("user_id = ? AND setting_key = ?", userID, key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.Value, nil
}

// Set upserts the setting for the user
func (r *postgresPreferenceRepository) Set(userID uint, key, value string) error {
	pref := models.NotificationPreference{
		UserID:     userID,
		SettingKey: key,
		Value:      value,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&pref).Error
}

func (r *postgresPreferenceRepository) GetAllForUser(userID uint) (map[string]string, error) {
	var prefs []models.NotificationPreference
	if err := r.db.Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(prefs))
	for _, p := range prefs {
		result[p.SettingKey] = p.Value
	}
	return result, nil
}

func (r *postgresPreferenceRepository) DeleteAllForUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.NotificationPreference{}).Error
}
