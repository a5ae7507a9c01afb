package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/high-five/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) {
			users = append(users, *u)
		}
	}
	return users, nil
}

type fakeHighFiveRepo struct {
	rows []models.HighFive
	err  error
}

func (r *fakeHighFiveRepo) CreateHighFive(hf *models.HighFive) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, row := range r.rows {
		if row.RecipientID == hf.RecipientID && row.SenderID == hf.SenderID {
			return false, nil
		}
	}
	r.rows = append(r.rows, *hf)
	return true, nil
}

func (r *fakeHighFiveRepo) HasHighFived(recipientID, senderID uint) (bool, error) {
	for _, row := range r.rows {
		if row.RecipientID == recipientID && row.SenderID == senderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeHighFiveRepo) GetHighFiversFor(recipientID uint) ([]uint, error) {
	var ids []uint
	for _, row := range r.rows {
		if row.RecipientID == recipientID {
			ids = append(ids, row.SenderID)
		}
	}
	return ids, nil
}

func (r *fakeHighFiveRepo) GetHighFivesFor(recipientID uint) ([]models.HighFive, error) {
	var rows []models.HighFive
	for _, row := range r.rows {
		if row.RecipientID == recipientID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *fakeHighFiveRepo) DeleteAllForUser(userID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.RecipientID != userID && row.SenderID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	r.nextID++
	n.ID = r.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) GetUnreadCountByType(recipientID uint, notificationType string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.Type == notificationType && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) GetLatestUnreadByType(recipientID uint, notificationType string) (*models.Notification, error) {
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

func (r *fakeNotificationRepo) MarkReadByType(recipientID uint, notificationType string) error {
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.RecipientID == recipientID && n.Type == notificationType {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteAllForUser(recipientID uint) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.RecipientID != recipientID && n.ActorID != recipientID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

type fakePreferenceRepo struct {
	values map[string]string
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{values: make(map[string]string)}
}

func prefKey(userID uint, key string) string {
	return fmt.Sprintf("%d/%s", userID, key)
}

func (r *fakePreferenceRepo) Get(userID uint, key string) (string, error) {
	return r.values[prefKey(userID, key)], nil
}

func (r *fakePreferenceRepo) Set(userID uint, key, value string) error {
	r.values[prefKey(userID, key)] = value
	return nil
}

func (r *fakePreferenceRepo) GetAllForUser(userID uint) (map[string]string, error) {
	prefix := fmt.Sprintf("%d/", userID)
	out := make(map[string]string)
	for k, v := range r.values {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out, nil
}

func (r *fakePreferenceRepo) DeleteAllForUser(userID uint) error {
	prefix := fmt.Sprintf("%d/", userID)
	for k := range r.values {
		if strings.HasPrefix(k, prefix) {
			delete(r.values, k)
		}
	}
	return nil
}

type fakeTermsRepo struct {
	decisions map[uint]*models.TermsDecision
}

func newFakeTermsRepo() *fakeTermsRepo {
	return &fakeTermsRepo{decisions: make(map[uint]*models.TermsDecision)}
}

func (r *fakeTermsRepo) GetDecision(userID uint) (*models.TermsDecision, error) {
	return r.decisions[userID], nil
}

func (r *fakeTermsRepo) SetDecision(userID uint, state models.TermsState) error {
	r.decisions[userID] = &models.TermsDecision{UserID: userID, State: state, DecidedAt: time.Now()}
	return nil
}

type fakeActivityRepo struct {
	entries   []models.ActivityEntry
	recordErr error
}

func (r *fakeActivityRepo) RecordActivity(ctx context.Context, entry *models.ActivityEntry) (string, error) {
	if r.recordErr != nil {
		return "", r.recordErr
	}
	if entry.Component == "" {
		entry.Component = models.ActivityComponent
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return fmt.Sprintf("entry-%d", len(r.entries)), nil
}

func (r *fakeActivityRepo) RetractActivity(ctx context.Context, userID uint, activityType models.ActivityType) error {
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

func (r *fakeActivityRepo) GetByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.ActivityEntry, error) {
	var out []models.ActivityEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) GetSitewide(ctx context.Context, skip, limit int64) ([]models.ActivityEntry, error) {
	var out []models.ActivityEntry
	for _, e := range r.entries {
		if !e.HideSitewide {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) HasEntry(ctx context.Context, userID uint, activityType models.ActivityType, itemID uint) (bool, error) {
	for _, e := range r.entries {
		if e.UserID == userID && e.Type == activityType && e.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeActivityRepo) CountByUserAndType(ctx context.Context, userID uint, activityType models.ActivityType) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.UserID == userID && e.Type == activityType {
			count++
		}
	}
	return count, nil
}

func (r *fakeActivityRepo) DeleteAllForUser(ctx context.Context, userID uint) error {
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

func (r *fakeActivityRepo) entriesOfType(activityType models.ActivityType) []models.ActivityEntry {
	var out []models.ActivityEntry
	for _, e := range r.entries {
		if e.Type == activityType {
			out = append(out, e)
		}
	}
	return out
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeNotifier struct {
	calls []notifyCall
	err   error
}

type notifyCall struct {
	to, from uint
}

func (n *fakeNotifier) NotifyHighFive(ctx context.Context, toUserID, fromUserID uint) error {
	n.calls = append(n.calls, notifyCall{to: toUserID, from: fromUserID})
	return n.err
}
