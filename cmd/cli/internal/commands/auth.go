package commands

import (
	"context"
	"fmt"
)

// LoginCmd signs in and persists the returned credential.
type LoginCmd struct {
	apiFlags
	Username string `help:"Username (prompted when omitted)"`
	Password string `help:"Password (prompted when omitted)"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.setup(ctx)
	if err != nil {
		return err
	}

	username := l.Username
	if username == "" {
		if username, err = prompt("Username: "); err != nil {
			return err
		}
	}

	password := l.Password
	if password == "" {
		if password, err = prompt("Password: "); err != nil {
			return err
		}
	}

	user, err := env.session.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.UserType)
	return nil
}

// LogoutCmd signs out: the remote call is best-effort, the local credential
// is always cleared.
type LogoutCmd struct {
	apiFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.setup(ctx)
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)
	env.session.Logout(ctx)

	fmt.Println("Logged out.")
	return nil
}

// WhoamiCmd prints the authenticated user.
type WhoamiCmd struct {
	apiFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := w.setup(ctx)
	if err != nil {
		return err
	}

	user, err := env.requireUser(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Username:  %s\n", user.Username)
	fmt.Printf("Email:     %s\n", user.Email)
	fmt.Printf("User type: %s\n", user.UserType)
	if user.AffiliateID != "" {
		fmt.Printf("Affiliate: %s\n", user.AffiliateID)
	}
	fmt.Printf("Joined:    %s\n", user.DateJoined.Format("2006-01-02"))
	return nil
}
