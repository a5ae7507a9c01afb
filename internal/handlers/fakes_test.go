package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/high-five/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the handler tests.

type memUserRepo struct {
	users map[uint]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) CreateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUsers() ([]models.User, error) { return nil, nil }

func (r *memUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) DeleteUser(id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) {
			users = append(users, *u)
		}
	}
	return users, nil
}

type memHighFiveRepo struct {
	rows []models.HighFive
}

func (r *memHighFiveRepo) CreateHighFive(hf *models.HighFive) (bool, error) {
	for _, row := range r.rows {
		if row.RecipientID == hf.RecipientID && row.SenderID == hf.SenderID {
			return false, nil
		}
	}
	r.rows = append(r.rows, *hf)
	return true, nil
}

func (r *memHighFiveRepo) HasHighFived(recipientID, senderID uint) (bool, error) {
	for _, row := range r.rows {
		if row.RecipientID == recipientID && row.SenderID == senderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memHighFiveRepo) GetHighFiversFor(recipientID uint) ([]uint, error) {
	var ids []uint
	for _, row := range r.rows {
		if row.RecipientID == recipientID {
			ids = append(ids, row.SenderID)
		}
	}
	return ids, nil
}

func (r *memHighFiveRepo) GetHighFivesFor(recipientID uint) ([]models.HighFive, error) {
	var rows []models.HighFive
	for _, row := range r.rows {
		if row.RecipientID == recipientID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *memHighFiveRepo) DeleteAllForUser(userID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.RecipientID != userID && row.SenderID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type memNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func (r *memNotificationRepo) CreateNotification(n *models.Notification) error {
	r.nextID++
	n.ID = r.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *memNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) GetUnreadCountByType(recipientID uint, notificationType string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.Type == notificationType && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) GetLatestUnreadByType(recipientID uint, notificationType string) (*models.Notification, error) {
	var latest *models.Notification
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.RecipientID != recipientID || n.Type != notificationType || n.IsRead {
			continue
		}
		if latest == nil || n.CreatedAt.After(latest.CreatedAt) {
			latest = n
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *memNotificationRepo) MarkReadByType(recipientID uint, notificationType string) error {
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.RecipientID == recipientID && n.Type == notificationType {
			n.IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) DeleteAllForUser(recipientID uint) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.RecipientID != recipientID && n.ActorID != recipientID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

type memPreferenceRepo struct {
	values map[string]string
}

func newMemPreferenceRepo() *memPreferenceRepo {
	return &memPreferenceRepo{values: make(map[string]string)}
}

func (r *memPreferenceRepo) key(userID uint, key string) string {
	return fmt.Sprintf("%d/%s", userID, key)
}

func (r *memPreferenceRepo) Get(userID uint, key string) (string, error) {
	return r.values[r.key(userID, key)], nil
}

func (r *memPreferenceRepo) Set(userID uint, key, value string) error {
	r.values[r.key(userID, key)] = value
	return nil
}

func (r *memPreferenceRepo) GetAllForUser(userID uint) (map[string]string, error) {
	prefix := fmt.Sprintf("%d/", userID)
	out := make(map[string]string)
	for k, v := range r.values {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out, nil
}

func (r *memPreferenceRepo) DeleteAllForUser(userID uint) error {
	prefix := fmt.Sprintf("%d/", userID)
	for k := range r.values {
		if strings.HasPrefix(k, prefix) {
			delete(r.values, k)
		}
	}
	return nil
}

type memTermsRepo struct {
	decisions map[uint]*models.TermsDecision
}

func newMemTermsRepo() *memTermsRepo {
	return &memTermsRepo{decisions: make(map[uint]*models.TermsDecision)}
}

func (r *memTermsRepo) GetDecision(userID uint) (*models.TermsDecision, error) {
	return r.decisions[userID], nil
}

func (r *memTermsRepo) SetDecision(userID uint, state models.TermsState) error {
	r.decisions[userID] = &models.TermsDecision{UserID: userID, State: state, DecidedAt: time.Now()}
	return nil
}

type memActivityRepo struct {
	entries []models.ActivityEntry
}

func (r *memActivityRepo) RecordActivity(ctx context.Context, entry *models.ActivityEntry) (string, error) {
	if entry.Component == "" {
		entry.Component = models.ActivityComponent
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return fmt.Sprintf("entry-%d", len(r.entries)), nil
}

func (r *memActivityRepo) RetractActivity(ctx context.Context, userID uint, activityType models.ActivityType) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserID == userID && e.Type == activityType {
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return nil
}

func (r *memActivityRepo) GetByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.ActivityEntry, error) {
	var out []models.ActivityEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memActivityRepo) GetSitewide(ctx context.Context, skip, limit int64) ([]models.ActivityEntry, error) {
	var out []models.ActivityEntry
	for _, e := range r.entries {
		if !e.HideSitewide {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memActivityRepo) HasEntry(ctx context.Context, userID uint, activityType models.ActivityType, itemID uint) (bool, error) {
	for _, e := range r.entries {
		if e.UserID == userID && e.Type == activityType && e.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memActivityRepo) CountByUserAndType(ctx context.Context, userID uint, activityType models.ActivityType) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.UserID == userID && e.Type == activityType {
			count++
		}
	}
	return count, nil
}

func (r *memActivityRepo) DeleteAllForUser(ctx context.Context, userID uint) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserID == userID || e.ItemID == userID {
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return nil
}

type dropMailer struct{}

func (dropMailer) Send(to, subject, body string) error { return nil }
