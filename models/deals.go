package models

// DealInput holds the client-supplied fields of a deal. Stage is free-form.
type DealInput struct {
	Title             string  `json:"title"`
	ContactID         string  `json:"contactId"`
	Value             float64 `json:"value"`
	Stage             string  `json:"stage"`
	Probability       int     `json:"probability"`
	ExpectedCloseDate string  `json:"expectedCloseDate"`
	AssignedTo        string  `json:"assignedTo"`
	Notes             string  `json:"notes"`
}

// Deal represents a deal linked to a contact.
type Deal struct {
	ID string `json:"id"`
	DealInput
	CreatedAt string `json:"createdAt"`
}

// DealPatch is a partial deal update.
type DealPatch struct {
	Title             *string  `json:"title,omitempty"`
	ContactID         *string  `json:"contactId,omitempty"`
	Value             *float64 `json:"value,omitempty"`
	Stage             *string  `json:"stage,omitempty"`
	Probability       *int     `json:"probability,omitempty"`
	ExpectedCloseDate *string  `json:"expectedCloseDate,omitempty"`
	AssignedTo        *string  `json:"assignedTo,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

func (d Deal) GetID() string { return d.ID }
