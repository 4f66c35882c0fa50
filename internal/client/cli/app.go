// Package cli implements the interactive effy terminal client. It wires the
// session store, the API client and the services together and drives them
// from a small REPL.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/effyhq/effy-cli/internal/client/api"
	"github.com/effyhq/effy-cli/internal/client/config"
	"github.com/effyhq/effy-cli/internal/client/services"
	"github.com/effyhq/effy-cli/internal/client/session"
	"github.com/effyhq/effy-cli/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	docService  services.DocumentService
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config, log logging.Logger) *App {
	out := os.Stdout

	store := session.NewFileStore(c.TokenPath)
	console := NewConsole(out)
	apiClient := api.New(c.BaseURL, c.RequestTimeout, store, console, console, log)

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, store, console, log),
		docService:  services.NewDocumentService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         out,
	}
}

// Run bootstraps the session from any persisted token and hands control to
// the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to effy (type 'help' for commands)")

	a.authService.Bootstrap(ctx)
	if user := a.authService.CurrentUser(); user != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.authService.State() == services.StateAuthenticated
}

// getStatus renders the prompt suffix: the signed-in email, or nothing.
func (a *App) getStatus() string {
	if user := a.authService.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Email)
	}
	return ""
}
