package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
	handler "github.com/AdReachMedia/LeadGen-CRM/internal/server/handler/http"
	"github.com/AdReachMedia/LeadGen-CRM/internal/service"
)

type fakeLeadService struct {
	leads     []models.Lead
	summaries []models.LeadSummary
	lead      *models.Lead
	getErr    error
	created   []models.Candidate

	plan   service.Plan
	report *service.ApplyReport
	stats  *service.DashboardStats
}

func (f *fakeLeadService) ListLeads(_ context.Context, ownerID string) ([]models.Lead, error) {
	return f.leads, nil
}
func (f *fakeLeadService) CreateLeads(_ context.Context, ownerID string, candidates []models.Candidate) (int, error) {
	f.created = candidates
	return len(candidates), nil
}
func (f *fakeLeadService) GetLead(_ context.Context, ownerID string, id int64) (*models.Lead, error) {
	return f.lead, f.getErr
}
func (f *fakeLeadService) ListLeadSummaries(_ context.Context, ownerID string, archived bool) ([]models.LeadSummary, error) {
	return f.summaries, nil
}
func (f *fakeLeadService) UpdateLeadStatus(_ context.Context, ownerID string, id int64, status *string) error {
	return nil
}
func (f *fakeLeadService) ApplyPlan(_ context.Context, ownerID string, plan service.Plan) (*service.ApplyReport, error) {
	f.plan = plan
	return f.report, nil
}
func (f *fakeLeadService) Stats(_ context.Context, ownerID string, includeArchived bool) (*service.DashboardStats, error) {
	return f.stats, nil
}

func strPtr(s string) *string { return &s }

func TestLeadHandler_ListFiltersArchived(t *testing.T) {
	fake := &fakeLeadService{leads: []models.Lead{
		{ID: 1, Name: "Active"},
		{ID: 2, Name: "Gone", Archived: true},
	}}
	h := &handler.LeadHandler{LeadService: fake}

	req := httptest.NewRequest(http.MethodGet, "/api/leads?archived=false", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var got []models.Lead
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("leads = %+v; want only the active one", got)
	}
}

func TestLeadHandler_GetNotFound(t *testing.T) {
	fake := &fakeLeadService{getErr: models.ErrNotFound}
	h := &handler.LeadHandler{LeadService: fake}

	r := chi.NewRouter()
	r.Get("/api/leads/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}

func TestLeadHandler_SaveGrid(t *testing.T) {
	fake := &fakeLeadService{report: &service.ApplyReport{Updated: 1, TasksCreated: 1}}
	h := &handler.LeadHandler{LeadService: fake}

	before := []models.Lead{{ID: 5, Name: "Alpha", Status: strPtr("open")}}
	after := []models.Lead{{ID: 5, Name: "Alpha", Status: strPtr("follow_up")}}
	b, _ := json.Marshal(handler.GridRequest{Before: before, After: after})

	req := httptest.NewRequest(http.MethodPost, "/api/leads/grid", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.SaveGrid(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	// The handler diffs the snapshots itself; the service receives the plan.
	if len(fake.plan.Updates) != 1 || fake.plan.Updates[0].ID != 5 {
		t.Errorf("plan updates = %+v; want the status change on lead 5", fake.plan.Updates)
	}
	if len(fake.plan.FollowUps) != 1 || fake.plan.FollowUps[0] != 5 {
		t.Errorf("plan follow-ups = %v; want [5]", fake.plan.FollowUps)
	}

	var resp service.ApplyReport
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp.Updated != 1 || resp.TasksCreated != 1 {
		t.Errorf("report = %+v", resp)
	}
}

func TestLeadHandler_SaveGridBadJSON(t *testing.T) {
	h := &handler.LeadHandler{LeadService: &fakeLeadService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/leads/grid", bytes.NewBufferString("not-a-json"))
	w := httptest.NewRecorder()

	h.SaveGrid(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "invalid body\n" {
		t.Errorf("body = %q; want %q", body, "invalid body\n")
	}
}

func TestLeadHandler_CreateBatch(t *testing.T) {
	fake := &fakeLeadService{}
	h := &handler.LeadHandler{LeadService: fake}

	b, _ := json.Marshal([]models.Candidate{{Name: "A"}, {Name: "B"}})
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusCreated)
	}
	if len(fake.created) != 2 {
		t.Errorf("service received %d candidates; want 2", len(fake.created))
	}
	var resp map[string]int
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp["created"] != 2 {
		t.Errorf("created = %d; want 2", resp["created"])
	}
}

func TestLeadHandler_Stats(t *testing.T) {
	fake := &fakeLeadService{stats: &service.DashboardStats{
		TotalLeads:   3,
		StatusCounts: map[string]int{"open": 2, "appointment": 1},
	}}
	h := &handler.LeadHandler{LeadService: fake}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	h.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var resp service.DashboardStats
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp.TotalLeads != 3 || resp.StatusCounts["open"] != 2 {
		t.Errorf("stats = %+v", resp)
	}
}
