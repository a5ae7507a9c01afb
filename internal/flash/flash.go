package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const cookieName = "hf_flash"

// Message types
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// Message is a one-shot status message carried across a redirect and shown on
// the next rendered page.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Set stores a flash message in a cookie for the next request
func Set(c echo.Context, msgType, text string) {
	payload, err := json.Marshal(Message{Type: msgType, Text: text})
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

// Pop reads and clears the pending flash message, returning nil when there is
// none.
func Pop(c echo.Context) *Message {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Expire the cookie so the message only shows once
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil
	}
	return &msg
}
