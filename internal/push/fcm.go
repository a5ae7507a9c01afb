package push

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// FCMPusher delivers push notifications through Firebase Cloud Messaging.
// Clients subscribe to their per-user topic; the server never tracks device
// tokens directly.
type FCMPusher struct {
	client *messaging.Client
}

// NewFCMPusher creates a new FCMPusher
func NewFCMPusher(client *messaging.Client) *FCMPusher {
	return &FCMPusher{client: client}
}

// Push sends a notification message to the user's topic
func (p *FCMPusher) Push(ctx context.Context, userID uint, title, body string) error {
	_, err := p.client.Send(ctx, &messaging.Message{
		Topic: fmt.Sprintf("user-%d", userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	return err
}
