package session

import "github.com/EO-DataHub/eodhp-crm-console/models"

// Status names the reachable session states.
type Status string

const (
	StatusBootstrapping   Status = "bootstrapping"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
	StatusError           Status = "error"
)

// State is a snapshot of the session.
type State struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
}

// InitialState is the state before bootstrap has finished.
func InitialState() State {
	return State{Loading: true}
}

// Status derives the session status. Bootstrapping covers any pending
// request made without a signed-in user, including a login in flight. A
// signed-in user stays authenticated while a request is pending.
func (s State) Status() Status {
	switch {
	case s.Loading && s.User == nil:
		return StatusBootstrapping
	case s.Error != "":
		return StatusError
	case s.IsAuthenticated && s.User != nil:
		return StatusAuthenticated
	default:
		return StatusUnauthenticated
	}
}

// Action is a tagged state transition.
type Action interface {
	reduce(State) State
}

type SetLoading struct{ Loading bool }

type SetUser struct{ User models.User }

// SetError records a failure and keeps whatever user is set.
type SetError struct{ Message string }

// LoginFailed records a failed login and clears the user.
type LoginFailed struct{ Message string }

type Logout struct{}

func (a SetLoading) reduce(s State) State {
	s.Loading = a.Loading
	return s
}

func (a SetUser) reduce(s State) State {
	user := a.User
	return State{User: &user, IsAuthenticated: true}
}

func (a SetError) reduce(s State) State {
	s.Error = a.Message
	s.Loading = false
	return s
}

func (a LoginFailed) reduce(State) State {
	return State{Error: a.Message}
}

func (Logout) reduce(State) State {
	return State{}
}

// Reduce applies an action to a state. A nil action leaves the state as is.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.reduce(s)
}
