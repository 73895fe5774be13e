package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/leadform/leadform/internal/api"
)

// Login exchanges a username and password for a credential and profile.
func (c *Client) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp api.LoginResponse
	if err := c.post(ctx, "/auth/login/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the server-side session for the current credential.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout/", nil, nil)
}

// Profile fetches the authenticated principal.
func (c *Client) Profile(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.get(ctx, "/auth/profile/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the writable profile fields. The response is the
// server's authoritative view of the whole record.
func (c *Client) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	if err := api.Validate(update); err != nil {
		return nil, err
	}

	var user api.User
	if err := c.put(ctx, "/auth/profile/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword submits all three password fields; the server re-validates
// the match and the current password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword, confirm string) (*api.PasswordChangeResponse, error) {
	body := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}{CurrentPassword: current, NewPassword: newPassword, ConfirmPassword: confirm}

	var resp api.PasswordChangeResponse
	if err := c.post(ctx, "/auth/change-password/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset asks the server to email a reset link. The response
// does not reveal whether the email is registered.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*api.MessageResponse, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	var resp api.MessageResponse
	if err := c.post(ctx, "/auth/password-reset/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmPasswordReset completes a reset using the emailed token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword, confirm string) (*api.MessageResponse, error) {
	body := struct {
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}{NewPassword: newPassword, ConfirmPassword: confirm}

	var resp api.MessageResponse
	path := fmt.Sprintf("/auth/password-reset-confirm/%s/", url.PathEscape(token))
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
