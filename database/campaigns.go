package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CampaignStore provides access to the email_campaigns table.
type CampaignStore struct{ db *sqlx.DB }

// NewCampaignStore creates a campaign store on the given database handle.
func NewCampaignStore(db *sqlx.DB) *CampaignStore { return &CampaignStore{db: db} }

// Create persists a campaign record and fills in its assigned id and creation
// time.
func (s *CampaignStore) Create(ctx context.Context, c *EmailCampaign) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO email_campaigns (subject, body, recipients_count, filter_profession)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.Subject, c.Body, c.RecipientsCount, c.FilterProfession).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// Recent returns the most recent campaign records, newest first.
func (s *CampaignStore) Recent(ctx context.Context, limit int) ([]EmailCampaign, error) {
	if limit <= 0 {
		limit = 50
	}
	var campaigns []EmailCampaign
	err := s.db.SelectContext(ctx, &campaigns, `
		SELECT id, subject, body, recipients_count, filter_profession, created_at
		FROM email_campaigns
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}
