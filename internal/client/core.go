package client

import (
	"context"

	"github.com/leadform/leadform/internal/api"
)

// Dashboard fetches the role-shaped dashboard payload.
func (c *Client) Dashboard(ctx context.Context) (*api.Dashboard, error) {
	var dash api.Dashboard
	if err := c.get(ctx, "/core/dashboard/", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// Analytics fetches the aggregated analytics series. These numbers always
// come from the server; nothing is synthesized client-side.
func (c *Client) Analytics(ctx context.Context) (*api.Analytics, error) {
	var analytics api.Analytics
	if err := c.get(ctx, "/core/analytics/", nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}
