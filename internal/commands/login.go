package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"daylist/internal/backend/resthttp"
	"daylist/internal/config"
	"daylist/internal/exitcode"
	"daylist/internal/service"
)

// loginCheckTimeout bounds the credential check against the server.
const loginCheckTimeout = 30 * time.Second

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. It stores the server address and
// access token after verifying them with a round trip to the backend.
type LoginCmd struct {
	server string
	token  string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store server address and token" }
func (c *LoginCmd) Usage() string     { return "daylist login --server <url> --token <token>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.server, "server", "", "")
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	server := strings.TrimSpace(c.server)
	token := strings.TrimSpace(c.token)

	// Reuse the stored server address when only the token is refreshed.
	if server == "" && cfg.HasServer() {
		stored, err := cfg.ServerURL()
		if err == nil {
			server = stored
		}
	}
	if server == "" {
		fmt.Fprintln(errOut, "error: server address required (--server)")
		return exitcode.UserError
	}
	if token == "" {
		fmt.Fprintln(errOut, "error: token required (--token)")
		return exitcode.UserError
	}

	u, err := url.Parse(server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(errOut, "error: invalid server address: %s\n", server)
		return exitcode.UserError
	}

	// Verify the credentials before storing them.
	checkCtx, cancel := context.WithTimeout(ctx, loginCheckTimeout)
	defer cancel()

	client := resthttp.NewWithToken(checkCtx, server, token)
	if _, err := client.ListLists(checkCtx); err != nil {
		fmt.Fprintf(errOut, "error: could not reach server: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := cfg.SaveServerURL(server); err != nil {
		fmt.Fprintf(errOut, "error: failed to save server address: %v\n", err)
		return exitcode.AuthError
	}
	if err := cfg.SaveToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
