package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/leadform/leadform/internal/api"
	"github.com/leadform/leadform/internal/client"
	"github.com/leadform/leadform/internal/config"
	"github.com/leadform/leadform/internal/credentials"
	"github.com/leadform/leadform/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// apiFlags are the connection flags shared by every command that talks to
// the API. Flags override the config file, which overrides the environment.
type apiFlags struct {
	Server  string `help:"API base URL (overrides config)"`
	Retries uint   `help:"Retry transient network failures up to N attempts (off by default)" default:"0"`
}

// env is the composition root for one command invocation: it owns the
// session and wires the client's unauthorized notification into it.
type env struct {
	cfg     *config.Config
	client  *client.Client
	session *session.Session
}

func (f apiFlags) setup(ctx context.Context, opts ...client.Option) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if f.Server != "" {
		cfg.APIURL = f.Server
	}

	store, err := credentials.NewStore(cfg.CredentialsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	opts = append([]client.Option{client.WithTimeout(cfg.Timeout)}, opts...)
	if f.Retries > 0 {
		opts = append(opts, client.WithRetry(f.Retries))
	}

	apiClient := client.New(cfg.APIURL, store, opts...)
	sess := session.New(store, apiClient)

	apiClient.SetUnauthorizedHandler(func() {
		sess.HandleUnauthorized()
		fmt.Fprintln(os.Stderr, "Session expired. Run 'leadform-cli login' to sign in again.")
	})

	return &env{cfg: cfg, client: apiClient, session: sess}, nil
}

// requireUser resolves the stored credential to an identity, failing with a
// login hint when the caller is anonymous.
func (e *env) requireUser(ctx context.Context) (*api.User, error) {
	e.session.Initialize(ctx)
	user := e.session.Identity()
	if user == nil {
		return nil, errors.New("not logged in\n\nRun 'leadform-cli login' to sign in")
	}
	return user, nil
}

// prompt reads one line from stdin after printing the label.
func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// siteURL derives the public site origin from the API base URL: embed and
// tracking links live at the root, not under /api.
func siteURL(apiURL string) string {
	return strings.TrimSuffix(strings.TrimSuffix(apiURL, "/"), "/api")
}

// truncate shortens s to at most n display runes. Counting runes rather
// than bytes keeps multibyte names and emails valid UTF-8.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
