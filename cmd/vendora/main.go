package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/as4584/Vendora/internal/api"
	"github.com/as4584/Vendora/internal/config"
	"github.com/as4584/Vendora/internal/db"
	"github.com/as4584/Vendora/internal/session"
	"github.com/as4584/Vendora/internal/store"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR
// goes to stderr. If logPath is non-empty, all levels are also written to
// that file. Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// app bundles everything a command needs: configuration, the local session
// database, the API client, and the loaded session.
type app struct {
	cfg    config.Config
	db     *sql.DB
	client *api.Client
	sess   session.Session
}

// newApp loads configuration, opens the session database, and wires the API
// client with the stored token (if any).
func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.SessionPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	database, err := db.Open(cfg.SessionPath)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, err
	}

	sess, err := loadSession(context.Background(), database, cfg.BaseURL)
	if err != nil {
		database.Close()
		return nil, err
	}

	client := api.New(cfg.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		api.WithToken(sess.Token),
	)

	return &app{cfg: cfg, db: database, client: client, sess: sess}, nil
}

// loadSession returns the stored session. A session saved against a different
// server is deleted, not just ignored: its token must not be replayed against
// another host, and its cached listings describe the wrong service.
func loadSession(ctx context.Context, database *sql.DB, baseURL string) (session.Session, error) {
	sess, err := session.Load(ctx, database)
	if err != nil {
		return session.Session{}, err
	}

	if sess.SignedIn() && sess.BaseURL != "" && sess.BaseURL != baseURL {
		if err := session.Clear(ctx, database); err != nil {
			return session.Session{}, err
		}
		if err := store.Invalidate(ctx, database); err != nil {
			return session.Session{}, err
		}
		return session.Session{}, nil
	}
	return sess, nil
}

func (a *app) close() {
	a.db.Close()
}

const usage = `Usage: vendora <command> [flags]

Commands:
  register     create a new seller account
  login        sign in and store the session
  logout       clear the stored session
  whoami       show the signed-in seller

  items        list inventory (one page)
  item         show one item and its legal status moves
  add-item     create an inventory item
  update-item  update an item's attributes
  delete-item  remove an item
  status       move an item through its lifecycle

  sale         log a quick sale
  refund       refund a transaction
  invoices     list invoices
  invoice      create an invoice
  invoice-status  send, cancel, or mark an invoice paid

  dashboard    show business metrics
  export       save inventory or transactions as CSV

Global environment: VENDORA_API_URL, VENDORA_SESSION, VENDORA_TIMEOUT_SECONDS.
Run 'vendora <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	closeLog, err := setupLogger(os.Getenv("VENDORA_LOG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	command, args := os.Args[1], os.Args[2:]

	commands := map[string]func(*app, []string) error{
		"register":       cmdRegister,
		"login":          cmdLogin,
		"logout":         cmdLogout,
		"whoami":         cmdWhoami,
		"items":          cmdItems,
		"item":           cmdItem,
		"add-item":       cmdAddItem,
		"update-item":    cmdUpdateItem,
		"delete-item":    cmdDeleteItem,
		"status":         cmdStatus,
		"sale":           cmdSale,
		"refund":         cmdRefund,
		"invoices":       cmdInvoices,
		"invoice":        cmdInvoice,
		"invoice-status": cmdInvoiceStatus,
		"dashboard":      cmdDashboard,
		"export":         cmdExport,
	}

	run, ok := commands[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", command, usage)
		os.Exit(1)
	}

	a, err := newApp(os.Getenv("VENDORA_CONFIG"))
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.close()

	if err := run(a, args); err != nil {
		slog.Error(command+" failed", "error", err)
		os.Exit(1)
	}
}
