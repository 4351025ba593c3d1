package services

import (
	"errors"
	"time"

	"github.com/EO-DataHub/eodhp-crm-console/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
)

// ValidationError reports a request body the backend refuses to store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Backend is an in-memory implementation of the CRM REST API, used as a
// sandbox for local development and tests.
type Backend struct {
	Users    *Users
	Contacts *Table[models.Contact]
	Leads    *Table[models.Lead]
	Deals    *Table[models.Deal]

	Secret   []byte
	TokenTTL time.Duration
}

// NewBackend creates an empty backend that signs tokens with secret.
func NewBackend(secret []byte, tokenTTL time.Duration) *Backend {
	return &Backend{
		Users:    NewUsers(),
		Contacts: NewTable("contacts", stampContact, validateContact),
		Leads:    NewTable("leads", stampLead, validateLead),
		Deals:    NewTable("deals", stampDeal, validateDeal),
		Secret:   secret,
		TokenTTL: tokenTTL,
	}
}

func stampContact(c *models.Contact, id string, createdAt time.Time) {
	c.ID, c.CreatedAt = id, createdAt.Format(time.RFC3339)
}

func stampLead(l *models.Lead, id string, createdAt time.Time) {
	l.ID, l.CreatedAt = id, createdAt.Format(time.RFC3339)
}

func stampDeal(d *models.Deal, id string, createdAt time.Time) {
	d.ID, d.CreatedAt = id, createdAt.Format(time.RFC3339)
}

func validateContact(c models.Contact) error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	switch c.Status {
	case models.ContactActive, models.ContactInactive:
	default:
		return &ValidationError{Field: "status", Message: "must be active or inactive"}
	}
	return nil
}

func validateLead(l models.Lead) error {
	if l.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if !l.Status.Valid() {
		return &ValidationError{Field: "status", Message: "is not a pipeline status"}
	}
	return validateProbability(l.Probability)
}

func validateDeal(d models.Deal) error {
	if d.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	return validateProbability(d.Probability)
}

func validateProbability(p int) error {
	if p < 0 || p > 100 {
		return &ValidationError{Field: "probability", Message: "must be between 0 and 100"}
	}
	return nil
}
