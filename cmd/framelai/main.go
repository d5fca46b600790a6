// Command framelai detects and translates the text of design frames using AI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaguanLabs/framelai"
	"github.com/ZaguanLabs/framelai/cache"
	"github.com/ZaguanLabs/framelai/frameio"
	"github.com/ZaguanLabs/framelai/internal/config"
	"github.com/ZaguanLabs/framelai/internal/logger"
	"github.com/ZaguanLabs/framelai/provider"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = framelai.Version
	commit    = framelai.GitCommit
	buildDate = framelai.BuildDate
)

// newProvider builds the AI backend. Tests replace it with a mock.
var newProvider = func(cfg *config.Config) (framelai.Provider, string, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, "", fmt.Errorf("OpenAI API key required (OPENAI_API_KEY env)")
	}
	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		BaseURL:     cfg.OpenAIBaseURL,
	})
	return p, p.Model(), nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	envFile    string
	framesFile string
	quiet      bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "framelai",
		Short: "Detect and translate the text of design frames using AI",
		Long: `framelai keeps a collection of design frames, detects the source language
of the selected frames, and translates every text element of the selection
into a target language in one all-or-nothing batch.

Configuration comes from the environment and an optional .env file:
  OPENAI_API_KEY            API key for the OpenAI-compatible backend
  FRAMELAI_MODEL            Model name (default gpt-4o-mini)
  FRAMELAI_REDIS_URL        Shared translation cache (optional)
  FRAMELAI_CACHE_TTL        Cache TTL in seconds, 0 disables caching
  FRAMELAI_RPM              Provider requests per minute, 0 for no limit
  FRAMELAI_MAX_CONCURRENCY  Concurrent calls per translation, 0 for no limit
  FRAMELAI_FRAMES           Frame file (json, yaml or html)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file to load")
	root.PersistentFlags().StringVar(&a.framesFile, "frames", "", "Frame file (default: FRAMELAI_FRAMES or built-in demo frames)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only log errors")

	root.AddCommand(
		newTranslateCmd(a),
		newDetectCmd(a),
		newServeCmd(a),
		newLanguagesCmd(),
		newVersionCmd(),
	)

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.framesFile != "" {
		cfg.FramesFile = a.framesFile
	}
	a.cfg = cfg

	if _, err := logger.Init(cfg.LogEnv); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	if a.quiet {
		logger.SetLevel(zapcore.ErrorLevel)
	}
	a.log = logger.Named("cli")
	return nil
}

func (a *app) loadFrames() (framelai.Collection, error) {
	if a.cfg.FramesFile == "" {
		return frameio.DemoFrames(), nil
	}
	return frameio.Load(a.cfg.FramesFile)
}

// buildProvider stacks the configured cache and rate limiter on top of the
// backend. The returned cleanup function releases the cache connection.
func (a *app) buildProvider(ctx context.Context) (framelai.Provider, func(), error) {
	base, model, err := newProvider(a.cfg)
	if err != nil {
		return nil, nil, err
	}

	p := base
	cleanup := func() {}

	switch {
	case a.cfg.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL: a.cfg.RedisURL,
			TTL: a.cfg.CacheTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = rc.Close() }
		p = framelai.NewCachedProvider(p, rc, model)
		a.log.Debug("using redis cache")
	case a.cfg.CacheTTL > 0:
		mem := cache.NewInMemoryCache(a.cfg.CacheTTL).WithMaxEntries(a.cfg.CacheMaxEntries)
		p = framelai.NewCachedProvider(p, mem, model)
	}

	if a.cfg.RequestsPerMinute > 0 {
		p = framelai.NewRateLimitedProvider(p, framelai.RateLimitConfig{
			RequestsPerMinute: a.cfg.RequestsPerMinute,
		})
	}

	return p, cleanup, nil
}

// newSession loads the frames and builds a session over the provider stack.
// The returned cleanup function closes the session and the cache.
func (a *app) newSession(ctx context.Context, opts ...framelai.SessionOption) (*framelai.Session, func(), error) {
	frames, err := a.loadFrames()
	if err != nil {
		return nil, nil, err
	}

	p, cleanup, err := a.buildProvider(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]framelai.SessionOption{
		framelai.WithLogger(logger.Named("session")),
		framelai.WithMaxConcurrency(a.cfg.MaxConcurrency),
		framelai.WithBaseContext(ctx),
	}, opts...)

	s, err := framelai.NewSession(frames, p, p, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return s, func() {
		s.Close()
		cleanup()
	}, nil
}

// selectFrames selects ids, or every frame when ids is empty, and waits for
// source language detection to settle.
func selectFrames(s *framelai.Session, ids []string) error {
	if len(ids) == 0 {
		for _, f := range s.Frames() {
			ids = append(ids, f.ID)
		}
	}
	for _, id := range ids {
		if err := s.Toggle(strings.TrimSpace(id), true); err != nil {
			return err
		}
	}
	s.Wait()
	return nil
}

// stderrNotifier prints notifications the way a toast would show them.
func stderrNotifier(w io.Writer) framelai.Notifier {
	return framelai.NotifierFunc(func(n framelai.Notification) {
		fmt.Fprintf(w, "%s %s\n", n.Title, n.Description)
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", framelai.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
		},
	}
}
