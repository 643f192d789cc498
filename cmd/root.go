package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/config"
	"github.com/abhisek/gradekit/internal/judge"
	"github.com/abhisek/gradekit/internal/llm"
	"github.com/abhisek/gradekit/internal/logging"
	"github.com/abhisek/gradekit/internal/questionset"
	"github.com/abhisek/gradekit/internal/store"
)

// cfg is resolved once per invocation in PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "gradekit",
	Short:         "Validate learner answers",
	Long:          "gradekit grades learner answers to generated quiz questions: text, multiple-choice, multiple-answer, true/false and dropdown.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("db") {
			c.DB, _ = flags.GetString("db")
		}
		if flags.Changed("log-level") {
			c.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("log-format") {
			c.LogFormat, _ = flags.GetString("log-format")
		}
		if flags.Changed("vocab") {
			c.Vocab, _ = flags.GetString("vocab")
		}
		if flags.Changed("judge") {
			c.Judge, _ = flags.GetBool("judge")
		}

		logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		cfg = c
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "SQLite file or postgres:// URL (overrides GRADEKIT_DB)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("vocab", "", "YAML vocabulary override file")
	pf.Bool("judge", false, "Consult an LLM judge for free-text answers the rules mark wrong")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(responsesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore connects to the configured database, falling back to the
// default data-directory path.
func openStore(ctx context.Context) (store.Backend, error) {
	dsn := cfg.DB
	if dsn == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dsn = p
	} else if err := store.EnsureDir(dsn); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	s, err := store.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// newEngine builds the grading engine from the vocabulary and judge
// settings. The returned func releases the judge's cache connection.
func newEngine(ctx context.Context, repo store.EventRepo) (*answer.Engine, func(), error) {
	var opts []answer.Option
	cleanup := func() {}

	if cfg.Vocab != "" {
		v, err := questionset.LoadVocabulary(cfg.Vocab)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, answer.WithVocabulary(v))
	}

	if cfg.Judge {
		provider, err := llm.NewProvider(ctx, llmConfig(), repo, slog.Default())
		if err != nil {
			return nil, cleanup, fmt.Errorf("configure judge: %w", err)
		}
		var j answer.Judge = judge.NewLLMJudge(provider)
		if cfg.CacheURL != "" {
			cache, err := judge.NewRedisCache(ctx, cfg.CacheURL, cfg.CacheTTL)
			if err != nil {
				slog.Warn("verdict cache unavailable, judging uncached", "error", err)
			} else {
				j = judge.Cached(j, cache, slog.Default())
				cleanup = func() { cache.Close() }
			}
		}
		opts = append(opts, answer.WithJudge(j, cfg.JudgeMinConfidence))
	}

	return answer.NewEngine(opts...), cleanup, nil
}

// llmConfig prefers an explicit GRADEKIT_LLM_PROVIDER, then whichever
// vendor API key is present.
func llmConfig() llm.Config {
	if os.Getenv("GRADEKIT_LLM_PROVIDER") == "" {
		if c, ok := llm.DiscoverConfig(); ok {
			return c
		}
	}
	return llm.ConfigFromEnv()
}
