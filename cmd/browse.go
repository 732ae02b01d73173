package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/api"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/cases"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/drafts"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/filters"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/lookup"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/session"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/staging"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Start the interactive case browser",
	Long: `Start the terminal user interface for the case-management backend:

1. Cases table with filters, debounced search and pagination
2. Multi-step case creation with tags and staged attachments
3. Case detail view with notes, documents, judgements and events
4. Local draft persistence for in-progress case requests

The browse command runs until the TUI is closed (q) or the process is
interrupted (Ctrl+C).

Examples:
  # Browse against the configured backend
  jrss-console browse

  # Point at a different environment
  jrss-console browse --api-url https://jrss.example.com --environment staging`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	if config.User.Email == "" {
		return fmt.Errorf("no user email configured; set --email or user.email in the config file")
	}

	// Logs go to file while the TUI owns the terminal; errors still reach stderr.
	var logger *log.Logger
	logFile := setupFileLogger()
	if logFile != nil {
		logger = log.New(io.MultiWriter(logFile, &errorFilterWriter{os.Stderr}), "[browse] ", log.LstdFlags)
		defer logFile.Close()
	} else {
		logger = log.New(os.Stderr, "[browse] ", log.LstdFlags)
	}

	logger.Println("Starting case browser")

	client := api.NewClient(api.ClientConfig{
		BaseURL:     config.API.BaseURL,
		Environment: config.API.Environment,
		AppVersion:  appVersion,
		Email:       config.User.Email,
		Language:    config.User.Language,
	}, logger)

	// Best-effort preference cache; falls back to the in-process store
	// when Redis is not configured or unreachable.
	prefs := session.NewPreferences(config.Redis.URL, log.New(io.Discard, "", 0))
	defer prefs.Close()

	sess := session.New(client, prefs, config.User.Email, config.User.Language, logger)
	if err := sess.LoadPermissions(ctx); err != nil {
		// Permission fetch failing must not block browsing; actions that
		// need a missing permission are disabled in the UI instead.
		logger.Printf("Could not load permissions: %v", err)
	}

	logger.Println("Opening drafts database...")
	draftStore, err := drafts.NewStore(config.Drafts.Path)
	if err != nil {
		return fmt.Errorf("failed to open drafts store: %w", err)
	}
	defer draftStore.Close()

	lookups := lookup.NewCache(client, logger)
	filterStore := filters.NewStore(config.List.PageSize)
	caseService := cases.NewService(client, logger)

	var stager *staging.Watcher
	if config.Staging.Dir != "" {
		stager, err = staging.NewWatcher(staging.Options{
			Dir:    config.Staging.Dir,
			Logger: log.New(io.Discard, "", 0),
		})
		if err != nil {
			logger.Printf("Attachment staging disabled: %v", err)
		} else {
			defer stager.Close()
		}
	}

	app := ui.NewApp(ctx, ui.Deps{
		Client:   client,
		Session:  sess,
		Lookups:  lookups,
		Filters:  filterStore,
		Cases:    caseService,
		Drafts:   draftStore,
		Staging:  stager,
		Logger:   uiLogger(logFile),
		Language: config.User.Language,
	})

	if w, h := getTerminalSize(); w > 0 && h > 0 && (w < 80 || h < 24) {
		logger.Printf("Terminal %dx%d is small; the layout needs at least 80x24", w, h)
	}

	if err := app.Start(ctx); err != nil {
		if err == api.ErrUnauthorized {
			// Console analogue of the browser's hard /login redirect.
			return fmt.Errorf("session rejected by the backend (401); log in again")
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Println("Case browser stopped")
	return nil
}

// uiLogger returns a logger the TUI can use without disturbing the screen.
func uiLogger(logFile *os.File) *log.Logger {
	if logFile != nil {
		return log.New(logFile, "[ui] ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// setupFileLogger creates the log file under ./data, returning nil on failure.
func setupFileLogger() *os.File {
	if err := os.MkdirAll("data", 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join("data", "jrss-console.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}

// errorFilterWriter passes only error-looking lines through to the terminal.
type errorFilterWriter struct {
	w io.Writer
}

func (e *errorFilterWriter) Write(p []byte) (int, error) {
	line := string(p)
	if strings.Contains(line, "ERROR") || strings.Contains(line, "error:") || strings.Contains(line, "failed") {
		return e.w.Write(p)
	}
	return len(p), nil
}
