package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadform/leadform/internal/password"
)

// PasswordCmd groups the three password lifecycle flows.
type PasswordCmd struct {
	Change       PasswordChangeCmd       `cmd:"" help:"Change the password (authenticated)"`
	ResetRequest PasswordResetRequestCmd `cmd:"" name:"reset-request" help:"Request a password reset email"`
	ResetConfirm PasswordResetConfirmCmd `cmd:"" name:"reset-confirm" help:"Complete a reset with the emailed token"`
}

// PasswordChangeCmd changes the password for the authenticated user. Every
// rule is checked client-side before any network call.
type PasswordChangeCmd struct {
	apiFlags
	Current string `help:"Current password (prompted when omitted)"`
	New     string `help:"New password (prompted when omitted)"`
	Confirm string `help:"Confirmation of the new password (prompted when omitted)"`
}

func (p *PasswordChangeCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := p.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	current, newPassword, confirm := p.Current, p.New, p.Confirm
	if current == "" {
		if current, err = prompt("Current password: "); err != nil {
			return err
		}
	}
	if newPassword == "" {
		if newPassword, err = prompt("New password: "); err != nil {
			return err
		}
	}
	if confirm == "" {
		if confirm, err = prompt("Confirm new password: "); err != nil {
			return err
		}
	}

	req := password.ChangeRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	}
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return errors.New(fieldErrs.Err())
	}

	message, err := env.session.ChangePassword(ctx, current, newPassword, confirm)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

// PasswordResetRequestCmd asks for a reset email. Anonymous.
type PasswordResetRequestCmd struct {
	apiFlags
	Email string `arg:"" help:"Account email address"`
}

func (p *PasswordResetRequestCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := p.setup(ctx)
	if err != nil {
		return err
	}

	message, err := env.session.RequestPasswordReset(ctx, p.Email)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

// PasswordResetConfirmCmd completes a reset with the emailed token. Anonymous.
type PasswordResetConfirmCmd struct {
	apiFlags
	Token   string `arg:"" help:"Reset token from the email link"`
	New     string `help:"New password (prompted when omitted)"`
	Confirm string `help:"Confirmation of the new password (prompted when omitted)"`
}

func (p *PasswordResetConfirmCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := p.setup(ctx)
	if err != nil {
		return err
	}

	newPassword, confirm := p.New, p.Confirm
	if newPassword == "" {
		if newPassword, err = prompt("New password: "); err != nil {
			return err
		}
	}
	if confirm == "" {
		if confirm, err = prompt("Confirm new password: "); err != nil {
			return err
		}
	}

	req := password.ResetConfirm{
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	}
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return errors.New(fieldErrs.Err())
	}

	message, err := env.session.ConfirmPasswordReset(ctx, p.Token, newPassword, confirm)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}
