package commands

import (
	"context"
	"fmt"

	"github.com/leadform/leadform/internal/api"
)

// ProfileCmd shows or updates the authenticated user's profile.
type ProfileCmd struct {
	Show   ProfileShowCmd   `cmd:"" default:"1" help:"Show the profile"`
	Update ProfileUpdateCmd `cmd:"" help:"Update profile fields"`
}

type ProfileShowCmd struct {
	apiFlags
	Refresh bool `help:"Re-fetch the profile from the server"`
}

func (p *ProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := p.setup(ctx)
	if err != nil {
		return err
	}

	user, err := env.requireUser(ctx)
	if err != nil {
		return err
	}

	if p.Refresh {
		if user, err = env.session.RefreshProfile(ctx); err != nil {
			return err
		}
	}

	fmt.Printf("ID:        %d\n", user.ID)
	fmt.Printf("Username:  %s\n", user.Username)
	fmt.Printf("Email:     %s\n", user.Email)
	fmt.Printf("User type: %s\n", user.UserType)
	if user.AffiliateID != "" {
		fmt.Printf("Affiliate: %s\n", user.AffiliateID)
	}
	fmt.Printf("Joined:    %s\n", user.DateJoined.Format("2006-01-02"))
	return nil
}

type ProfileUpdateCmd struct {
	apiFlags
	Username string `help:"New username"`
	Email    string `help:"New email address"`
}

func (p *ProfileUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	if p.Username == "" && p.Email == "" {
		return fmt.Errorf("nothing to update: pass --username and/or --email")
	}

	env, err := p.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	user, err := env.session.UpdateProfile(ctx, api.ProfileUpdate{
		Username: p.Username,
		Email:    p.Email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated: %s <%s>\n", user.Username, user.Email)
	return nil
}
