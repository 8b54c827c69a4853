package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/adivyas/khabri/internal/compose"
	"github.com/adivyas/khabri/internal/config"
	"github.com/adivyas/khabri/internal/domain"
	"github.com/adivyas/khabri/internal/gate"
	"github.com/adivyas/khabri/internal/groq"
	"github.com/adivyas/khabri/internal/meme"
	"github.com/adivyas/khabri/internal/orchestrator"
	"github.com/adivyas/khabri/internal/sources"
	"github.com/adivyas/khabri/internal/store"
	"github.com/adivyas/khabri/internal/xapi"
)

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "khabri",
		Short: "Hindi news and trends bot for X",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides DB_PATH)")

	rootCmd.AddCommand(trendCmd())
	rootCmd.AddCommand(cacheNewsCmd())
	rootCmd.AddCommand(newsCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "khabri",
	})
}

// buildOrchestrator wires every collaborator from the environment. The caller
// must Close the returned store.
func buildOrchestrator() (*orchestrator.Orchestrator, *store.Store, error) {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	logger := newLogger()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	gen, err := groq.New(cfg.LLM)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	composer := compose.New(gen, logger, compose.Options{
		HashtagsMax:         hashtagsMax(cfg),
		CritiqueAuthorities: cfg.CritiqueAuthorities,
	})
	g := gate.New(st, cfg.DailyLimit, cfg.MonthlyLimit)

	var publisher domain.Publisher
	if !cfg.TestMode {
		publisher, err = xapi.New(cfg.X)
		if err != nil {
			st.Close()
			return nil, nil, err
		}
	}

	var renderer domain.Renderer
	if cfg.UseMemes {
		renderer = meme.NewRenderer(cfg.MemeTemplate)
	}

	var news []sources.Provider
	if cfg.News.GNewsKey != "" {
		news = append(news, sources.NewGNews(cfg.News.GNewsKey, cfg.News.Country))
	}
	if cfg.News.NewsAPIKey != "" {
		news = append(news, sources.NewNewsAPI(cfg.News.NewsAPIKey, cfg.News.Country))
	}

	o := orchestrator.New(cfg, st, logger, composer, g, publisher, renderer,
		sources.NewTrending(), news)
	return o, st, nil
}

func hashtagsMax(cfg *config.Config) int {
	if !cfg.HashtagsEnabled {
		return 0
	}
	return cfg.HashtagsMax
}

func trendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Post on the current trending topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, st, err := buildOrchestrator()
			if err != nil {
				return err
			}
			defer st.Close()
			return o.RunTrendWindow()
		},
	}
}

func cacheNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache-news",
		Short: "Fetch headlines and stage them for posting",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, st, err := buildOrchestrator()
			if err != nil {
				return err
			}
			defer st.Close()
			return o.CacheNews()
		},
	}
}

func newsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Post the most recent staged headline",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, st, err := buildOrchestrator()
			if err != nil {
				return err
			}
			defer st.Close()
			return o.PostNews()
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's and this month's post counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			st, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			g := gate.New(st, cfg.DailyLimit, cfg.MonthlyLimit)
			daily, monthly, err := g.Counts()
			if err != nil {
				return err
			}
			fmt.Printf("today:      %d / %d\n", daily, cfg.DailyLimit)
			fmt.Printf("this month: %d / %d\n", monthly, cfg.MonthlyLimit)
			return nil
		},
	}
}
