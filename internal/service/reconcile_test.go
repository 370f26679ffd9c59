package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

func sPtr(s string) *string { return &s }

func lead(id int64, name string, status *string) models.Lead {
	return models.Lead{ID: id, Name: name, Status: status}
}

func TestReconcile_IdenticalSnapshots(t *testing.T) {
	snapshot := []models.Lead{
		lead(1, "Alpha AG", sPtr("open")),
		lead(2, "Beta GmbH", nil),
	}

	plan := Reconcile(snapshot, snapshot)

	assert.True(t, plan.Empty())
	assert.Empty(t, plan.Updates)
	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.FollowUps)
}

func TestReconcile_NilAndSentinelStatusCompareEqual(t *testing.T) {
	before := []models.Lead{lead(1, "Alpha AG", nil)}
	after := []models.Lead{lead(1, "Alpha AG", sPtr(""))}

	plan := Reconcile(before, after)

	assert.True(t, plan.Empty(), "unset sentinel must compare equal to null")
}

func TestReconcile_InsertAndDelete(t *testing.T) {
	before := []models.Lead{lead(1, "A", nil)}
	after := []models.Lead{lead(0, "B", nil)}

	plan := Reconcile(before, after)

	assert.Empty(t, plan.Updates)
	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "B", plan.Inserts[0].Name)
	require.Len(t, plan.Deletes, 1)
	assert.Equal(t, int64(1), plan.Deletes[0])
	assert.Empty(t, plan.FollowUps)
}

func TestReconcile_UnknownIDBecomesInsert(t *testing.T) {
	before := []models.Lead{lead(1, "A", nil)}
	after := []models.Lead{
		lead(1, "A", nil),
		lead(42, "Imported elsewhere", nil),
	}

	plan := Reconcile(before, after)

	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "Imported elsewhere", plan.Inserts[0].Name)
	assert.Empty(t, plan.Deletes)
}

func TestReconcile_NamelessNewRowDropped(t *testing.T) {
	before := []models.Lead{lead(1, "A", nil)}
	after := []models.Lead{
		lead(1, "A", nil),
		lead(0, "", sPtr("open")),
	}

	plan := Reconcile(before, after)

	assert.True(t, plan.Empty(), "rows without id and name are silently dropped")
}

func TestReconcile_UpdateCarriesOnlyChangedFields(t *testing.T) {
	before := []models.Lead{{
		ID:    5,
		Name:  "Alpha AG",
		Phone: sPtr("030 123"),
		Email: sPtr("a@alpha.de"),
	}}
	after := []models.Lead{{
		ID:    5,
		Name:  "Alpha AG",
		Phone: sPtr("030 999"),
		Email: sPtr("a@alpha.de"),
	}}

	plan := Reconcile(before, after)

	require.Len(t, plan.Updates, 1)
	assert.Equal(t, int64(5), plan.Updates[0].ID)
	assert.Equal(t, models.FieldSet{"phone": "030 999"}, plan.Updates[0].Fields)
}

func TestReconcile_ClearedFieldBecomesNull(t *testing.T) {
	before := []models.Lead{{ID: 5, Name: "Alpha AG", Phone: sPtr("030 123")}}
	after := []models.Lead{{ID: 5, Name: "Alpha AG", Phone: nil}}

	plan := Reconcile(before, after)

	require.Len(t, plan.Updates, 1)
	val, ok := plan.Updates[0].Fields["phone"]
	require.True(t, ok)
	assert.Nil(t, val)
}

func TestReconcile_FollowUpTransition(t *testing.T) {
	before := []models.Lead{lead(5, "Alpha AG", sPtr("open"))}
	after := []models.Lead{lead(5, "Alpha AG", sPtr(string(models.StatusFollowUp)))}

	plan := Reconcile(before, after)

	require.Len(t, plan.Updates, 1)
	assert.Equal(t, string(models.StatusFollowUp), plan.Updates[0].Fields["status"])
	require.Len(t, plan.FollowUps, 1)
	assert.Equal(t, int64(5), plan.FollowUps[0])
}

func TestReconcile_FollowUpFromUnsetStatus(t *testing.T) {
	before := []models.Lead{lead(5, "Alpha AG", nil)}
	after := []models.Lead{lead(5, "Alpha AG", sPtr(string(models.StatusFollowUp)))}

	plan := Reconcile(before, after)

	require.Len(t, plan.FollowUps, 1)
}

func TestReconcile_NoFollowUpWhenAlreadyFollowUp(t *testing.T) {
	before := []models.Lead{lead(5, "Alpha AG", sPtr(string(models.StatusFollowUp)))}
	after := []models.Lead{{
		ID:     5,
		Name:   "Alpha AG renamed",
		Status: sPtr(string(models.StatusFollowUp)),
	}}

	plan := Reconcile(before, after)

	require.Len(t, plan.Updates, 1)
	assert.Equal(t, models.FieldSet{"name": "Alpha AG renamed"}, plan.Updates[0].Fields)
	assert.Empty(t, plan.FollowUps, "staying in follow_up is not a transition")
}

func TestReconcile_FollowUpEvenWithoutOtherChanges(t *testing.T) {
	// Status is itself a change, but the transition must fire regardless of
	// whether any other column moved.
	before := []models.Lead{
		lead(1, "A", sPtr("reached")),
		lead(2, "B", sPtr("open")),
	}
	after := []models.Lead{
		lead(1, "A", sPtr(string(models.StatusFollowUp))),
		lead(2, "B", sPtr("open")),
	}

	plan := Reconcile(before, after)

	require.Len(t, plan.FollowUps, 1)
	assert.Equal(t, int64(1), plan.FollowUps[0])
}

func TestReconcile_StatusClearedEmitsNull(t *testing.T) {
	before := []models.Lead{lead(5, "Alpha AG", sPtr("open"))}
	after := []models.Lead{lead(5, "Alpha AG", nil)}

	plan := Reconcile(before, after)

	require.Len(t, plan.Updates, 1)
	val, ok := plan.Updates[0].Fields["status"]
	require.True(t, ok)
	assert.Nil(t, val)
}

func TestReconcile_InsertNormalizesEmptyFields(t *testing.T) {
	after := []models.Lead{{
		ID:       0,
		Name:     "New Lead",
		Phone:    sPtr(""),
		Status:   sPtr(""),
		Campaign: sPtr("manual"),
	}}

	plan := Reconcile(nil, after)

	require.Len(t, plan.Inserts, 1)
	ins := plan.Inserts[0]
	assert.Nil(t, ins.Phone, "empty strings normalize to explicit null")
	assert.Nil(t, ins.Status)
	require.NotNil(t, ins.Campaign)
	assert.Equal(t, "manual", *ins.Campaign)
}

func TestReconcile_MixedPlan(t *testing.T) {
	before := []models.Lead{
		lead(1, "Keep", sPtr("open")),
		lead(2, "Gone", nil),
		lead(3, "Moves", sPtr("reached")),
	}
	after := []models.Lead{
		lead(1, "Keep", sPtr("open")),
		lead(3, "Moves", sPtr(string(models.StatusFollowUp))),
		lead(0, "Fresh", nil),
	}

	plan := Reconcile(before, after)

	require.Len(t, plan.Updates, 1)
	assert.Equal(t, int64(3), plan.Updates[0].ID)
	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "Fresh", plan.Inserts[0].Name)
	assert.Equal(t, []int64{2}, plan.Deletes)
	assert.Equal(t, []int64{3}, plan.FollowUps)
}
