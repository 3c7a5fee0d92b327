package cli

import (
	"context"
	"fmt"

	"github.com/reteki/outreach/internal/config"
	"github.com/reteki/outreach/internal/engine"
	"github.com/reteki/outreach/internal/links"
	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/prompt"
	"github.com/reteki/outreach/internal/store"
	"github.com/reteki/outreach/internal/templates"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "outreach",
	Short:        "Personalized B2B outreach drafts from prospect profiles",
	Long:         "Outreach turns a pasted prospect profile into a personalized network message or email draft, using per-role prompt templates and a generative model.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "outreach.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(sentCmd)
}

// openDB opens the configured database, falling back to ~/.outreach/outreach.db.
func openDB(cfg config.Config) (*store.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// loadTemplates returns the template store with persisted overrides applied.
func loadTemplates(db *store.DB) *templates.Store {
	tmpl := templates.NewStore(db)
	tmpl.LoadPersisted()
	return tmpl
}

func newComposer(cfg config.Config, tmpl *templates.Store) *prompt.Composer {
	enricher := links.NewEnricher(links.Options{
		Timeout:      cfg.Links.Timeout,
		MaxBodyBytes: cfg.Links.MaxBodyBytes,
		RateLimitRPS: cfg.Links.RateLimitRPS,
		UserAgent:    cfg.Links.UserAgent,
	})
	return prompt.NewComposer(tmpl, enricher)
}

// newEngine wires the composer and the configured provider. A missing
// credential is returned as an error so the command exits non-zero.
func newEngine(ctx context.Context, cfg config.Config, tmpl *templates.Store) (*engine.Engine, error) {
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	return engine.New(newComposer(cfg, tmpl), client, cfg.LLM.GenerationTemperature, cfg.LLM.ExtractionTemperature), nil
}
