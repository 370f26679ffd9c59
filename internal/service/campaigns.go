package service

import (
	"context"

	"github.com/AdReachMedia/LeadGen-CRM/internal/cache"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// CampaignRepository defines the persistence operations needed by the
// CampaignService. A campaign is not a stored entity; both operations are
// bulk predicate updates over leads.
type CampaignRepository interface {
	// SetCampaignArchived toggles the archived flag on every lead of the
	// owner sharing the campaign label.
	SetCampaignArchived(ctx context.Context, ownerID, campaign string, archived bool) error
	// PurgeCampaign irreversibly deletes the owner's leads with the label,
	// cascading to their tasks and notes.
	PurgeCampaign(ctx context.Context, ownerID, campaign string) error
}

// CampaignService implements the archive/restore/purge lifecycle of campaign
// labels.
type CampaignService struct {
	repo  CampaignRepository
	cache *cache.Cache
}

// NewCampaignService constructs a CampaignService.
func NewCampaignService(repo CampaignRepository, c *cache.Cache) *CampaignService {
	return &CampaignService{repo: repo, cache: c}
}

// Archive hides every lead of the campaign from the active views. Idempotent.
func (s *CampaignService) Archive(ctx context.Context, ownerID, campaign string) error {
	return s.setArchived(ctx, ownerID, campaign, true)
}

// Restore is the exact inverse of Archive. Idempotent.
func (s *CampaignService) Restore(ctx context.Context, ownerID, campaign string) error {
	return s.setArchived(ctx, ownerID, campaign, false)
}

func (s *CampaignService) setArchived(ctx context.Context, ownerID, campaign string, archived bool) error {
	if campaign == "" {
		return models.NewValidationError("campaign", "must not be empty")
	}
	if ownerID == "" {
		return nil
	}
	if err := s.repo.SetCampaignArchived(ctx, ownerID, campaign, archived); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// Purge permanently deletes the campaign's leads together with their tasks
// and notes. Scoped to the owner like every other destructive operation.
func (s *CampaignService) Purge(ctx context.Context, ownerID, campaign string) error {
	if campaign == "" {
		return models.NewValidationError("campaign", "must not be empty")
	}
	if ownerID == "" {
		return nil
	}
	if err := s.repo.PurgeCampaign(ctx, ownerID, campaign); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
