package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadform/leadform/internal/api"
)

// ListAffiliates returns all affiliate partners.
func (c *Client) ListAffiliates(ctx context.Context) ([]api.Affiliate, error) {
	var affiliates []api.Affiliate
	if err := c.get(ctx, "/affiliates/affiliates/", nil, &affiliates); err != nil {
		return nil, err
	}
	return affiliates, nil
}

// CreateAffiliate registers a new affiliate partner.
func (c *Client) CreateAffiliate(ctx context.Context, affiliate api.AffiliateCreate) (*api.Affiliate, error) {
	if err := api.Validate(affiliate); err != nil {
		return nil, err
	}

	var created api.Affiliate
	if err := c.post(ctx, "/affiliates/affiliates/", affiliate, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AffiliateStats fetches performance statistics for one affiliate.
func (c *Client) AffiliateStats(ctx context.Context, id uuid.UUID) (*api.AffiliateStats, error) {
	var stats api.AffiliateStats
	if err := c.get(ctx, fmt.Sprintf("/affiliates/affiliates/%s/stats/", id), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
