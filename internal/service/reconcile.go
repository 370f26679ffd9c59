// Package service provides business-logic services for leads, campaigns,
// tasks, notes and authentication, delegating persistence to repository
// interfaces.
package service

import (
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// FollowUpDescription is the description stamped on automatically created
// follow-up tasks.
const FollowUpDescription = "Follow-Up"

// FollowUpLeadDays is how many days out an automatic follow-up task is due.
const FollowUpLeadDays = 7

// LeadUpdate is one row update in a reconciliation plan, carrying only the
// changed semantic fields.
type LeadUpdate struct {
	ID     int64           `json:"id"`
	Fields models.FieldSet `json:"fields"`
}

// Plan is the write plan computed by Reconcile. The three batches are
// independent; applying them is the caller's job.
type Plan struct {
	Updates []LeadUpdate       `json:"updates"`
	Inserts []models.Candidate `json:"inserts"`
	Deletes []int64            `json:"deletes"`
	// FollowUps lists the lead ids whose status transitioned into
	// models.StatusFollowUp between the two snapshots.
	FollowUps []int64 `json:"follow_ups"`
}

// Empty reports whether the plan contains no work.
func (p Plan) Empty() bool {
	return len(p.Updates) == 0 && len(p.Inserts) == 0 && len(p.Deletes) == 0 && len(p.FollowUps) == 0
}

// normStatus collapses the two representations of "unset" (nil and the empty
// UI placeholder) into the empty string for comparison.
func normStatus(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cleanPtr maps nil and empty strings to an explicit null.
func cleanPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func eqPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// candidateFromLead projects the semantic fields of an edited row into an
// insertable record, dropping any id it may carry.
func candidateFromLead(l models.Lead) models.Candidate {
	var status *string
	if s := normStatus(l.Status); s != "" {
		status = &s
	}
	return models.Candidate{
		Name:          l.Name,
		Industry:      cleanPtr(l.Industry),
		Address:       cleanPtr(l.Address),
		Phone:         cleanPtr(l.Phone),
		Email:         cleanPtr(l.Email),
		Website:       cleanPtr(l.Website),
		ContactPerson: cleanPtr(l.ContactPerson),
		Status:        status,
		Campaign:      cleanPtr(l.Campaign),
		Archived:      l.Archived,
	}
}

// fieldValue turns a nullable pointer into a FieldSet value.
func fieldValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// diffLead compares the semantic fields of a persisted row against its edited
// version and returns the changed ones. Status is compared with the unset
// sentinel and true-null treated as equal.
func diffLead(before, after models.Lead) models.FieldSet {
	fields := models.FieldSet{}
	if before.Name != after.Name {
		fields["name"] = after.Name
	}
	if !eqPtr(before.Industry, after.Industry) {
		fields["industry"] = fieldValue(after.Industry)
	}
	if !eqPtr(before.Address, after.Address) {
		fields["address"] = fieldValue(after.Address)
	}
	if !eqPtr(before.Phone, after.Phone) {
		fields["phone"] = fieldValue(after.Phone)
	}
	if !eqPtr(before.Email, after.Email) {
		fields["email"] = fieldValue(after.Email)
	}
	if !eqPtr(before.Website, after.Website) {
		fields["website"] = fieldValue(after.Website)
	}
	if !eqPtr(before.ContactPerson, after.ContactPerson) {
		fields["contact_person"] = fieldValue(after.ContactPerson)
	}
	if !eqPtr(before.Campaign, after.Campaign) {
		fields["campaign"] = fieldValue(after.Campaign)
	}
	if normStatus(before.Status) != normStatus(after.Status) {
		if s := normStatus(after.Status); s == "" {
			fields["status"] = nil
		} else {
			fields["status"] = s
		}
	}
	return fields
}

// Reconcile diffs the last-persisted snapshot against the user-edited one and
// computes the minimal set of writes plus the follow-up transitions the
// caller must act on. It performs no I/O and cannot fail.
//
// Matching is by lead id. Edited rows without an id (or with an id unknown to
// the before snapshot) become inserts when they carry a name and are silently
// dropped otherwise. Persisted rows whose id is missing from the edited
// snapshot become deletes.
func Reconcile(before, after []models.Lead) Plan {
	var plan Plan

	beforeByID := make(map[int64]models.Lead, len(before))
	for _, l := range before {
		if l.ID != 0 {
			beforeByID[l.ID] = l
		}
	}

	surviving := make(map[int64]bool, len(after))
	for _, row := range after {
		prev, known := beforeByID[row.ID]
		if row.ID != 0 && known {
			surviving[row.ID] = true
			if fields := diffLead(prev, row); len(fields) > 0 {
				plan.Updates = append(plan.Updates, LeadUpdate{ID: row.ID, Fields: fields})
			}
			if normStatus(prev.Status) != string(models.StatusFollowUp) &&
				normStatus(row.Status) == string(models.StatusFollowUp) {
				plan.FollowUps = append(plan.FollowUps, row.ID)
			}
			continue
		}
		if row.Name != "" {
			plan.Inserts = append(plan.Inserts, candidateFromLead(row))
		}
	}

	for _, l := range before {
		if l.ID != 0 && !surviving[l.ID] {
			plan.Deletes = append(plan.Deletes, l.ID)
		}
	}

	return plan
}
