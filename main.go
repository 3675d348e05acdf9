package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"auto_blog_article_publisher/config"
	"auto_blog_article_publisher/generator"
	"auto_blog_article_publisher/pipeline"
	"auto_blog_article_publisher/publisher"
	"auto_blog_article_publisher/topic"
)

var (
	postType   string
	configPath string
	dryRun     bool
	offline    bool
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "autopost",
		Short:         "Generate and publish one blog post",
		Long:          "Picks a topic, drafts a post with a local or OpenAI-compatible model, and commits it to the blog repository.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVar(&postType, "type", string(generator.ModeDaily), "post type: daily or weekly")
	rootCmd.Flags().StringVar(&configPath, "config", "autopost.yaml", "path to the YAML config")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "write the post and an HTML preview without touching git")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "use the built-in trend list and mock model")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ FATAL: automation run failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	mode, ok := generator.ParseMode(postType)
	if !ok {
		return fmt.Errorf("invalid --type %q (want daily or weekly)", postType)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := setupLogger(level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return err
	}
	trends, err := buildTrends(cfg, logger)
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg.RepoPath)
	if err != nil {
		return err
	}

	runner, err := pipeline.New(pipeline.Deps{
		Config: cfg,
		Trends: trends,
		LLM:    llm,
		Repo:   repo,
		DryRun: dryRun,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	rep, err := runner.Run(ctx, mode)
	if err != nil {
		return err
	}
	fmt.Println(rep.Path)
	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func buildLLM(cfg config.LLMConfig) (generator.LLMClient, error) {
	if offline {
		return generator.MockLLM{}, nil
	}
	settings := &generator.LLMSettings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	}
	switch cfg.Provider {
	case "ollama":
		return generator.NewOllamaLLMFromConfig(settings)
	case "openai":
		// 兼容 OpenAI 接口的服务（vLLM、LM Studio、Ollama /v1）都走这里，需填写 base_url。
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

func buildTrends(cfg *config.Config, logger *slog.Logger) (topic.TrendSource, error) {
	switch {
	case cfg.Trends.Disabled:
		return nil, nil
	case offline:
		return topic.Static{Topics: cfg.Trends.Seeds}, nil
	}
	return topic.NewGoogleTrends(cfg.Trends, logger.With("component", "trends"))
}

func openRepository(path string) (publisher.Repository, error) {
	if dryRun {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve repo path: %w", err)
		}
		return publisher.Local(abs), nil
	}
	return publisher.OpenGitRepository(path)
}
