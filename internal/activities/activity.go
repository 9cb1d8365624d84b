// Package activities holds the in-memory activity registry and its roster operations.
package activities

import "slices"

// Activity is one extracurricular offering and its current roster.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft is the remaining capacity, never negative.
func (a *Activity) SpotsLeft() int {
	if left := a.MaxParticipants - len(a.Participants); left > 0 {
		return left
	}
	return 0
}

func (a *Activity) clone() Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}
