package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadform/leadform/internal/api"
)

// ListForms returns the forms visible to the caller. Admins see all forms,
// other users only their own.
func (c *Client) ListForms(ctx context.Context) ([]api.Form, error) {
	var forms []api.Form
	if err := c.get(ctx, "/forms/forms/", nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// GetForm fetches a single form.
func (c *Client) GetForm(ctx context.Context, id uuid.UUID) (*api.Form, error) {
	var form api.Form
	if err := c.get(ctx, fmt.Sprintf("/forms/forms/%s/", id), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateForm creates a new embeddable form.
func (c *Client) CreateForm(ctx context.Context, form api.FormCreate) (*api.Form, error) {
	if err := api.Validate(form); err != nil {
		return nil, err
	}

	var created api.Form
	if err := c.post(ctx, "/forms/forms/", form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateForm replaces a form's configuration.
func (c *Client) UpdateForm(ctx context.Context, id uuid.UUID, form api.FormCreate) (*api.Form, error) {
	if err := api.Validate(form); err != nil {
		return nil, err
	}

	var updated api.Form
	if err := c.put(ctx, fmt.Sprintf("/forms/forms/%s/", id), form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteForm removes a form and its captured leads.
func (c *Client) DeleteForm(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, fmt.Sprintf("/forms/forms/%s/", id))
}

// FormStats fetches view/submission statistics for one form.
func (c *Client) FormStats(ctx context.Context, id uuid.UUID) (*api.FormStats, error) {
	var stats api.FormStats
	if err := c.get(ctx, fmt.Sprintf("/forms/forms/%s/stats/", id), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
