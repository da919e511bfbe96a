// Package model defines the core domain types for the activity signup service.
package model

// Activity is an extracurricular offering with its participant roster.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// IsFull returns true when the roster has reached capacity.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// HasParticipant reports whether email is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so the roster can be handed out safely.
func (a *Activity) Clone() Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// MessageResponse acknowledges a successful signup or unregistration.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope read by the web UI.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
