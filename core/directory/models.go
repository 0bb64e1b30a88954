package directory

import "time"

// Student is an enrolled child. The Secret is the last 4 digits of the owning
// parent's phone number; it is shared with the parent and used as a
// low-assurance check-in PIN, never serialized.
type Student struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"-"`
	ParentID string `json:"parent_id"`
	Secret   string `json:"-"`

	// ParentName is filled in by queries that join the parent record.
	ParentName string `json:"parent_name"`

	CreatedAt time.Time `json:"-"`
}

type Parent struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	CreatedAt time.Time `json:"-"`
}

// Instructor teaches sessions and clocks in/out with a 4-digit Secret.
type Instructor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"-"`
	Secret   string `json:"-"`

	CreatedAt time.Time `json:"-"`
}
