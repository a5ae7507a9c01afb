package repositories

import (
	"github.com/anonto42/high-five/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	GetUnreadCountByType(recipientID uint, notificationType string) (int64, error)
	GetLatestUnreadByType(recipientID uint, notificationType string) (*models.Notification, error)
	MarkReadByType(recipientID uint, notificationType string) error
	MarkAllAsRead(recipientID uint) error
	DeleteAllForUser(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) GetUnreadCountByType(recipientID uint, notificationType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ? AND is_read = false", recipientID, notificationType).
		Count(&count).Error
	return count, err
}

// GetLatestUnreadByType returns the most recent unread notification of the
// given type, used to pick the sender for the single-sender message form.
func (r *postgresNotificationRepository) GetLatestUnreadByType(recipientID uint, notificationType string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where("recipient_id = ? AND type = ? AND is_read = false", recipientID, notificationType).
		Order("created_at DESC").
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkReadByType marks every unread notification of one type as read. This is
// what happens when the recipient visits the screen that owns the type.
func (r *postgresNotificationRepository) MarkReadByType(recipientID uint, notificationType string) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ? AND is_read = false", recipientID, notificationType).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) DeleteAllForUser(recipientID uint) error {
	return r.db.Where("recipient_id = ? OR actor_id = ?", recipientID, recipientID).Delete(&models.Notification{}).Error
}
