package contact

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Status is the triage state of a contact message.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusResolved Status = "resolved"
)

// Statuses lists every valid triage state.
var Statuses = []Status{StatusNew, StatusRead, StatusReplied, StatusResolved}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusResolved:
		return true
	}
	return false
}

// Message represents one contact-form submission.
type Message struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	Body        string    `json:"message"`
	Status      Status    `json:"status"`
	ReferenceID string    `json:"referenceId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReferenceID generates a human-shareable ticket identifier in the form
// CAMPUS-<epoch-millis>-<5 uppercase alphanumerics>. Uniqueness is enforced
// by the store; a collision surfaces as ErrDuplicateReference on insert.
func NewReferenceID() string {
	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("contact: reference id entropy: %v", err))
	}
	for i, b := range suffix {
		suffix[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("CAMPUS-%d-%s", time.Now().UnixMilli(), suffix)
}
