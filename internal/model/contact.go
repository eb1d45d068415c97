package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// TimeLayout is how createdAt is written: UTC with exactly three
// fractional digits.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Contact message categories. The set is closed: anything else is rejected.
const (
	CategoryGeneral  = "General question"
	CategoryFeedback = "Feedback"
	CategoryBug      = "Bug report"
)

// Categories lists the accepted message types in display order.
var Categories = []string{CategoryGeneral, CategoryFeedback, CategoryBug}

// IsCategory reports whether s is one of the accepted message types.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}

// ContactMessage is a contact form submission as persisted in the store.
// Records are written once and never updated.
type ContactMessage struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Accepted  bool      `json:"accepted"`
	Company   string    `json:"company"` // honeypot, always "" once stored
}

// MarshalJSON writes CreatedAt in TimeLayout and leaves <, > and & unescaped.
func (m ContactMessage) MarshalJSON() ([]byte, error) {
	record := struct {
		ID        string `json:"id"`
		CreatedAt string `json:"createdAt"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Subject   string `json:"subject"`
		Message   string `json:"message"`
		Type      string `json:"type"`
		Accepted  bool   `json:"accepted"`
		Company   string `json:"company"`
	}{
		ID:        m.ID,
		CreatedAt: m.CreatedAt.UTC().Format(TimeLayout),
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Type:      m.Type,
		Accepted:  m.Accepted,
		Company:   m.Company,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ContactInput carries the candidate field values of a submission before it
// has been accepted.
type ContactInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Accepted bool   `json:"accepted"`
	Company  string `json:"company"`
}
