package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const minTruncate = 3

type Config struct {
	RepoPath string       `yaml:"repo_path"`
	PostsDir string       `yaml:"posts_dir"`
	Timezone string       `yaml:"timezone"`
	LogLevel string       `yaml:"log_level"`
	LLM      LLMConfig    `yaml:"llm"`
	Trends   TrendsConfig `yaml:"trends"`
	Topics   TopicsConfig `yaml:"topics"`
	Post     PostConfig   `yaml:"post"`
	Git      GitConfig    `yaml:"git"`
}

// LLMConfig configures the text-generation endpoint. Provider is "ollama"
// (native /api/generate) or "openai" (any OpenAI-compatible endpoint,
// including Ollama's /v1).
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float64       `yaml:"temperature"`
	TopP        float64       `yaml:"top_p"`
	TopK        int           `yaml:"top_k"`
	MaxTokens   int           `yaml:"max_tokens"`
	MinLength   int           `yaml:"min_length"`
	Persona     string        `yaml:"persona"`
}

type TrendsConfig struct {
	Disabled      bool          `yaml:"disabled"`
	BaseURL       string        `yaml:"base_url"`
	Seeds         []string      `yaml:"seeds"`
	Timeframe     string        `yaml:"timeframe"`
	Geo           string        `yaml:"geo"`
	Language      string        `yaml:"hl"`
	TZOffset      int           `yaml:"tz"`
	Property      string        `yaml:"property"`
	Timeout       time.Duration `yaml:"timeout"`
	MinInterval   time.Duration `yaml:"min_interval"`
	TrendingLimit int           `yaml:"trending_limit"`
	RisingLimit   int           `yaml:"rising_limit"`
}

type TopicsConfig struct {
	Curated        []string `yaml:"curated"`
	Default        string   `yaml:"default"`
	DedupCurated   bool     `yaml:"dedup_curated"`
	CuratedOnError *bool    `yaml:"curated_on_error"`
}

type PostConfig struct {
	Layout          string   `yaml:"layout"`
	Author          string   `yaml:"author"`
	BaseCategories  []string `yaml:"base_categories"`
	BaseKeywords    []string `yaml:"base_keywords"`
	TitleMax        int      `yaml:"title_max"`
	AbstractMax     int      `yaml:"abstract_max"`
	AbstractPrefix  string   `yaml:"abstract_prefix"`
	MaxKeywords     int      `yaml:"max_keywords"`
	Extension       string   `yaml:"extension"`
	RoundupTitleFmt string   `yaml:"roundup_title"`
}

type GitConfig struct {
	Remote   string `yaml:"remote"`
	TokenEnv string `yaml:"token_env"`
	BotName  string `yaml:"bot_name"`
	BotEmail string `yaml:"bot_email"`
	Push     *bool  `yaml:"push"`
}

// Load reads a YAML config file, expanding ${VAR} references from the
// environment (and a .env file when present). A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("llm.provider must be 'ollama' or 'openai', got %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout must not be negative")
	}
	if c.Topics.Default == "" {
		return errors.New("topics.default is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.Git.TokenEnv == "" {
		return errors.New("git.token_env is required")
	}
	ext := c.Post.Extension
	if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("post.extension must look like \".md\", got %q", ext)
	}
	// Truncation appends "..." and needs room for it.
	if c.Post.TitleMax < minTruncate {
		return fmt.Errorf("post.title_max must be at least %d", minTruncate)
	}
	if c.Post.AbstractMax < minTruncate {
		return fmt.Errorf("post.abstract_max must be at least %d", minTruncate)
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) PushEnabled() bool {
	return c.Git.Push == nil || *c.Git.Push
}

// UseCuratedOnError reports whether a failed trend query falls back to the
// curated list (true, the default) or directly to the default topic.
func (t TopicsConfig) UseCuratedOnError() bool {
	return t.CuratedOnError == nil || *t.CuratedOnError
}
