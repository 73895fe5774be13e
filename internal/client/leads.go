package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadform/leadform/internal/api"
)

// ListLeads returns leads matching the filter, scoped by the caller's role.
func (c *Client) ListLeads(ctx context.Context, params api.LeadListParams) ([]api.Lead, error) {
	var leads []api.Lead
	if err := c.get(ctx, "/leads/leads/", params.Query(), &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// UpdateLead moves a lead through the pipeline or reassigns it.
func (c *Client) UpdateLead(ctx context.Context, id uuid.UUID, update api.LeadUpdate) (*api.Lead, error) {
	if err := api.Validate(update); err != nil {
		return nil, err
	}

	var lead api.Lead
	if err := c.put(ctx, fmt.Sprintf("/leads/leads/%s/", id), update, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// LeadStats fetches the aggregate lead counters.
func (c *Client) LeadStats(ctx context.Context) (*api.LeadStats, error) {
	var stats api.LeadStats
	if err := c.get(ctx, "/leads/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportLeads downloads the spreadsheet export of the caller's leads.
func (c *Client) ExportLeads(ctx context.Context) ([]byte, error) {
	return c.Download(ctx, "/leads/export/")
}
