package models

// LeadStatus is a stage of the sales pipeline. No transition rules are
// enforced between stages.
type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadContacted   LeadStatus = "contacted"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadClosedWon   LeadStatus = "closed_won"
	LeadClosedLost  LeadStatus = "closed_lost"
)

// LeadPipeline lists the lead statuses in pipeline order.
var LeadPipeline = []LeadStatus{
	LeadNew,
	LeadContacted,
	LeadQualified,
	LeadProposal,
	LeadNegotiation,
	LeadClosedWon,
	LeadClosedLost,
}

func (s LeadStatus) Valid() bool {
	for _, status := range LeadPipeline {
		if s == status {
			return true
		}
	}
	return false
}

// LeadInput holds the client-supplied fields of a lead.
type LeadInput struct {
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Company string     `json:"company"`
	Source  string     `json:"source"`
	Status  LeadStatus `json:"status"`
	Value   float64    `json:"value"`
	// Probability is a percentage, 0 to 100.
	Probability int `json:"probability"`
	// ExpectedCloseDate is a calendar date (YYYY-MM-DD).
	ExpectedCloseDate string `json:"expectedCloseDate"`
	AssignedTo        string `json:"assignedTo"`
}

// Lead represents a lead in the pipeline.
type Lead struct {
	ID string `json:"id"`
	LeadInput
	CreatedAt string `json:"createdAt"`
}

// LeadPatch is a partial lead update.
type LeadPatch struct {
	Name              *string     `json:"name,omitempty"`
	Email             *string     `json:"email,omitempty"`
	Company           *string     `json:"company,omitempty"`
	Source            *string     `json:"source,omitempty"`
	Status            *LeadStatus `json:"status,omitempty"`
	Value             *float64    `json:"value,omitempty"`
	Probability       *int        `json:"probability,omitempty"`
	ExpectedCloseDate *string     `json:"expectedCloseDate,omitempty"`
	AssignedTo        *string     `json:"assignedTo,omitempty"`
}

func (l Lead) GetID() string { return l.ID }
