// Package cli implements the grans command surface on top of the driving
// ports. Commands are package-level cobra vars registered in init; services
// are wired lazily on first use so that tests can inject fakes.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grans-labs/grans-cli/internal/adapters/driven/config/file"
	"github.com/grans-labs/grans-cli/internal/adapters/driven/embedding/ollama"
	"github.com/grans-labs/grans-cli/internal/adapters/driven/embedding/openai"
	"github.com/grans-labs/grans-cli/internal/adapters/driven/storage/sqlite"
	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
	"github.com/grans-labs/grans-cli/internal/core/services"
	"github.com/grans-labs/grans-cli/internal/logger"
)

// Global flags.
var (
	flagJSON    bool
	flagNoColor bool
	flagUTC     bool
	flagTZ      string
	flagDB      string
	flagVerbose bool
)

// Wired services. Tests set these directly; production wiring happens in
// ensureServices on first use.
var (
	store          *sqlite.Store
	configStore    driven.ConfigStore
	meetingService driving.MeetingQueries
	searchService  driving.SearchQueries
	browseService  driving.BrowseQueries
	infoService    driving.InfoQueries
)

// userLocation is the timezone all dates are parsed and rendered in.
var userLocation = time.Local

var rootCmd = &cobra.Command{
	Use:   "grans",
	Short: "Query your local meeting index",
	Long: `grans queries the local meeting index: meetings, transcripts,
AI note panels, people, calendars, events, templates and recipes.

All commands read the SQLite index on disk; nothing leaves your machine
except semantic search queries sent to the configured embedding provider.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		loc, err := resolveLocation()
		if err != nil {
			return err
		}
		userLocation = loc

		colorEnabled = !flagNoColor && term.IsTerminal(int(os.Stdout.Fd()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colour output")
	rootCmd.PersistentFlags().BoolVar(&flagUTC, "utc", false, "interpret and render dates in UTC")
	rootCmd.PersistentFlags().StringVar(&flagTZ, "tz", "", "timezone (IANA name or ±HH:MM offset)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
}

// Execute runs the root command and closes the store on all paths.
func Execute() error {
	err := rootCmd.Execute()
	if store != nil {
		store.Close() //nolint:errcheck
		store = nil
	}
	return err
}

// resolveLocation picks the timezone: --utc wins, then --tz, then the
// configured timezone, then the system default.
func resolveLocation() (*time.Location, error) {
	if flagUTC {
		return time.UTC, nil
	}
	if flagTZ != "" {
		return domain.ParseTimezone(flagTZ)
	}
	if configStore != nil {
		if tz := configStore.GetString("output.timezone"); tz != "" {
			return domain.ParseTimezone(tz)
		}
	}
	return time.Local, nil
}

// ensureServices opens the config store and database and wires the query
// services. A no-op when services are already present.
func ensureServices() error {
	if meetingService != nil {
		return nil
	}

	if configStore == nil {
		cs, err := file.NewConfigStore("")
		if err != nil {
			logger.Warn("config unavailable: %v", err)
		} else {
			configStore = cs
		}
	}
	applyConfigDefaults()

	path := flagDB
	if path == "" && configStore != nil {
		path = configStore.GetString("database.path")
	}

	s, err := sqlite.NewStore(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	store = s

	meetingService = services.NewMeetingService(
		s.MeetingStore(), s.TranscriptStore(), s.PanelStore(), s.PeopleStore())
	searchService = services.NewSearchService(
		s.MeetingStore(), s.TranscriptStore(), s.PanelStore(), s.VectorStore(), buildEmbedder())
	browseService = services.NewBrowseService(
		s.PeopleStore(), s.CalendarStore(), s.TemplateStore(), s.RecipeStore())
	infoService = services.NewInfoService(s.InfoStore())

	logger.Debug("store opened at %s (schema read-only: %t)", s.Path(), s.ReadOnly())
	return nil
}

// applyConfigDefaults folds configured defaults into settings the flags did
// not override. The config file loads after the persistent pre-run, so this
// runs once the store is wired.
func applyConfigDefaults() {
	if configStore == nil {
		return
	}
	if !flagUTC && flagTZ == "" {
		if tz := configStore.GetString("output.timezone"); tz != "" {
			if loc, err := domain.ParseTimezone(tz); err == nil {
				userLocation = loc
			} else {
				logger.Warn("ignoring configured timezone: %v", err)
			}
		}
	}
	if v, ok := configStore.Get("output.color"); ok {
		if enabled, isBool := v.(bool); isBool && !enabled {
			colorEnabled = false
		}
	}
}

// buildEmbedder constructs the configured embedding provider, or nil when
// none is configured. Semantic search reports its own error in that case.
func buildEmbedder() driven.Embedder {
	if configStore == nil {
		return nil
	}

	switch configStore.GetString("embedding.provider") {
	case "ollama":
		return ollama.NewEmbedder(ollama.Config{
			BaseURL: configStore.GetString("embedding.base_url"),
			Model:   configStore.GetString("embedding.model"),
		})
	case "openai":
		apiKey := configStore.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		e, err := openai.NewEmbedder(openai.Config{
			APIKey:  apiKey,
			BaseURL: configStore.GetString("embedding.base_url"),
			Model:   configStore.GetString("embedding.model"),
		})
		if err != nil {
			logger.Warn("embedding provider unavailable: %v", err)
			return nil
		}
		return e
	default:
		return nil
	}
}

// resolveDBPath returns the database path the file-level db commands act on
// without opening the store.
func resolveDBPath() (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if configStore != nil {
		if p := configStore.GetString("database.path"); p != "" {
			return p, nil
		}
	}
	return sqlite.DefaultPath()
}
