package mailer

import "time"

// LoginNotification is the JSON payload queued when a new owner session is
// created. The notify worker turns it into a plain-text email.
type LoginNotification struct {
	To      string    `json:"to"`
	Email   string    `json:"email"`
	IP      string    `json:"ip,omitempty"`
	Agent   string    `json:"agent,omitempty"`
	LoginAt time.Time `json:"login_at"`
}
