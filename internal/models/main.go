// Package models defines the core data structures for leads, tasks, notes and users.
package models

import "time"

// Status is the closed set of lead pipeline states. A lead's status may also
// be unset, which is represented as a nil pointer everywhere in the domain.
type Status string

const (
	// StatusOpen marks a lead that has not been contacted yet.
	StatusOpen Status = "open"
	// StatusReached marks a lead that answered at least once.
	StatusReached Status = "reached"
	// StatusNotReached marks a lead that could not be contacted.
	StatusNotReached Status = "not_reached"
	// StatusFollowUp marks a lead that asked to be contacted again.
	// Transitioning into this status spawns a follow-up task.
	StatusFollowUp Status = "follow_up"
	// StatusAppointment marks a lead with a scheduled appointment.
	StatusAppointment Status = "appointment"
	// StatusNoInterest marks a lead that declined.
	StatusNoInterest Status = "no_interest"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusReached, StatusNotReached, StatusFollowUp, StatusAppointment, StatusNoInterest:
		return true
	}
	return false
}

// ValidStatusValue reports whether a nullable status value is acceptable on a
// write path: nil (unset) or one of the enumerated statuses. The empty string
// is the UI placeholder for unset and is also accepted.
func ValidStatusValue(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	return Status(*s).Valid()
}

// Lead is a single business contact scoped to one owner. Nullable columns are
// pointers; a nil pointer maps to SQL NULL.
type Lead struct {
	// ID is the store-assigned identifier. Zero means not yet persisted.
	ID int64 `json:"id"`
	// Name is the business name. Required for persistence.
	Name string `json:"name"`
	// Industry is the trade category the lead was found under.
	Industry      *string `json:"industry"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Website       *string `json:"website"`
	ContactPerson *string `json:"contact_person"`
	// Status is nil when unset, otherwise one of the Status values.
	Status *string `json:"status"`
	// Campaign is the free-text label grouping leads from one acquisition run.
	Campaign *string `json:"campaign"`
	// Archived hides the lead from the active views.
	Archived bool `json:"is_archived"`
	// OwnerID scopes the lead to exactly one user.
	OwnerID   string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate is a lead record produced by a lead source or an import, before
// it has been persisted: a Lead minus id, owner and timestamps.
type Candidate struct {
	Name          string  `json:"name"`
	Industry      *string `json:"industry"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Website       *string `json:"website"`
	ContactPerson *string `json:"contact_person"`
	Status        *string `json:"status"`
	Campaign      *string `json:"campaign"`
	Archived      bool    `json:"is_archived"`
}

// LeadSummary is the lightweight projection used by selection widgets.
type LeadSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Campaign *string `json:"campaign"`
}

// Task is a follow-up item attached to a lead.
type Task struct {
	ID     int64 `json:"id"`
	LeadID int64 `json:"lead_id"`
	// DueDate has date precision; the time component is always midnight UTC.
	DueDate     time.Time `json:"due_date"`
	Description string    `json:"description"`
	Completed   bool      `json:"is_completed"`
	OwnerID     string    `json:"user_id"`
}

// TaskWithLead carries the joined lead columns the task views display.
type TaskWithLead struct {
	Task
	LeadName   string  `json:"lead_name"`
	LeadStatus *string `json:"lead_status"`
}

// Note is a timestamped free-text annotation on a lead. Append-only except
// for explicit deletion.
type Note struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"lead_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   string    `json:"user_id"`
}

// FieldSet is a partial lead update keyed by column name. Values are either
// strings or nil (explicit SQL NULL). The id is never part of a FieldSet.
type FieldSet map[string]any

// LeadColumns enumerates the semantic lead columns a FieldSet may address.
var LeadColumns = []string{
	"name", "industry", "address", "phone", "email",
	"website", "contact_person", "status", "campaign",
}

// User is an authenticated account.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
}
