package models

// Notification preference keys owned by the example component. A missing row
// means "yes"; email is suppressed only when the stored value is exactly "no".
const (
	PrefNewHighFive = "notification_example_new_high_five"
	PrefActionOne   = "notification_example_action_one"
	PrefActionTwo   = "notification_example_action_two"

	// PrefOptionOne backs the checkbox on the component settings screen.
	PrefOptionOne = "example_option_one"
)

// KnownNotificationPrefs lists the settings accepted by the notification
// settings screen.
var KnownNotificationPrefs = []string{PrefNewHighFive, PrefActionOne, PrefActionTwo}

// NotificationPreference is a per-user scalar setting (PostgreSQL)
type NotificationPreference struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"index;uniqueIndex:idx_user_setting"`
	SettingKey string `json:"setting_key" gorm:"size:64;uniqueIndex:idx_user_setting"`
	Value      string `json:"value" gorm:"size:8"`
}

type UpdateNotificationSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,dive,oneof=yes no"`
}

type UpdateOptionOneRequest struct {
	OptionOne bool `json:"option_one"`
}
