package models

type ContactStatus string

const (
	ContactActive   ContactStatus = "active"
	ContactInactive ContactStatus = "inactive"
)

// ContactInput holds the client-supplied fields of a contact.
type ContactInput struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Company     string        `json:"company"`
	Position    string        `json:"position"`
	LeadScore   int           `json:"leadScore"`
	Status      ContactStatus `json:"status"`
	LastContact string        `json:"lastContact,omitempty"`
}

// Contact is a contact as stored by the backend. ID and CreatedAt are
// assigned server-side. Timestamps are kept as the backend sends them.
type Contact struct {
	ID string `json:"id"`
	ContactInput
	CreatedAt string `json:"createdAt"`
}

// ContactPatch is a partial contact update.
type ContactPatch struct {
	Name        *string        `json:"name,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Company     *string        `json:"company,omitempty"`
	Position    *string        `json:"position,omitempty"`
	LeadScore   *int           `json:"leadScore,omitempty"`
	Status      *ContactStatus `json:"status,omitempty"`
	LastContact *string        `json:"lastContact,omitempty"`
}

func (c Contact) GetID() string { return c.ID }
