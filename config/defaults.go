package config

import "time"

// DefaultPersona is the fixed style instruction block sent with every
// generation request. The generator only asks for the body; the front matter
// is built locally.
const DefaultPersona = `You are 'Asrar Farooq', the enthusiastic and highly-skilled Cloud Infrastructure Engineer behind the 'Qubit' blog.
Your audience is technical (engineers, data scientists) but appreciates clear, hands-on explanations.
Your tone must be professional, structured, and informative.
The current date and time is {now}.

BODY STRUCTURE REQUIREMENTS (USE HEADERS EXACTLY AS BELOW):
1. ## Introduction: A friendly, engaging hook.
2. ## Why This Matters (The Problem Statement): Explain the real-world challenge this topic addresses.
3. ## Technical Deep Dive: [Specific Subtopic]: Detailed concepts, **bolding** for keywords, and bullet points.
4. ## The Code: [Language] Snippet: A concrete, simple, runnable example (Python/Terraform/GKE manifest) in a fenced code block.
5. ### The Qubit Takeaway: A one-paragraph, personal, opinionated conclusion summarizing the impact.

Output ONLY the Markdown body. Do NOT output YAML front matter, a title line, or any text before the introduction.`

var (
	defaultSeeds = []string{"MLOps", "LLM Fine-tuning", "GKE Autopilot", "JAX XLA", "Cloud Data Pipeline"}

	defaultCurated = []string{
		"A hands-on guide to using Vertex AI Workbench for MLOps",
		"Terraform modules for building secure Cloud Functions",
		"The architecture behind high-performance LLM serving",
	}

	defaultCategories = []string{"ai", "ml", "cloud", "tech"}
	defaultKeywords   = []string{"cloud engineering", "machine learning", "mlops"}
)

const defaultTopic = "An analysis of the latest advancements in Llama 3 and its application in enterprise RAG systems."

func (c *Config) setDefaults() {
	if c.RepoPath == "" {
		c.RepoPath = "."
	}
	if c.PostsDir == "" {
		c.PostsDir = "_posts"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Chicago"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.BaseURL == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.BaseURL = "http://localhost:11434/v1"
		default:
			c.LLM.BaseURL = "http://localhost:11434"
		}
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "phi3:3.8b-mini-4k-instruct"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 5 * time.Minute
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = 0.9
	}
	if c.LLM.TopK == 0 {
		c.LLM.TopK = 40
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1500
	}
	if c.LLM.MinLength == 0 {
		c.LLM.MinLength = 400
	}
	if c.LLM.Persona == "" {
		c.LLM.Persona = DefaultPersona
	}

	if c.Trends.BaseURL == "" {
		c.Trends.BaseURL = "https://trends.google.com"
	}
	if len(c.Trends.Seeds) == 0 {
		c.Trends.Seeds = defaultSeeds
	}
	if c.Trends.Timeframe == "" {
		c.Trends.Timeframe = "now 1-d"
	}
	if c.Trends.Geo == "" {
		c.Trends.Geo = "US"
	}
	if c.Trends.Language == "" {
		c.Trends.Language = "en-US"
	}
	if c.Trends.TZOffset == 0 {
		c.Trends.TZOffset = 360
	}
	if c.Trends.Property == "" {
		c.Trends.Property = "news"
	}
	if c.Trends.Timeout == 0 {
		c.Trends.Timeout = 30 * time.Second
	}
	if c.Trends.MinInterval == 0 {
		c.Trends.MinInterval = 2 * time.Second
	}
	if c.Trends.TrendingLimit == 0 {
		c.Trends.TrendingLimit = 10
	}
	if c.Trends.RisingLimit == 0 {
		c.Trends.RisingLimit = 5
	}

	if c.Topics.Curated == nil {
		c.Topics.Curated = defaultCurated
	}
	if c.Topics.Default == "" {
		c.Topics.Default = defaultTopic
	}

	if c.Post.Layout == "" {
		c.Post.Layout = "post"
	}
	if c.Post.Author == "" {
		c.Post.Author = "Asrar Farooq"
	}
	if len(c.Post.BaseCategories) == 0 {
		c.Post.BaseCategories = defaultCategories
	}
	if len(c.Post.BaseKeywords) == 0 {
		c.Post.BaseKeywords = defaultKeywords
	}
	if c.Post.TitleMax == 0 {
		c.Post.TitleMax = 80
	}
	if c.Post.AbstractMax == 0 {
		c.Post.AbstractMax = 160
	}
	if c.Post.AbstractPrefix == "" {
		c.Post.AbstractPrefix = "A hands-on deep dive into "
	}
	if c.Post.MaxKeywords == 0 {
		c.Post.MaxKeywords = 10
	}
	if c.Post.Extension == "" {
		c.Post.Extension = ".md"
	}
	if c.Post.RoundupTitleFmt == "" {
		c.Post.RoundupTitleFmt = "Qubit Tech Roundup: Week Ending January 2, 2006"
	}

	if c.Git.Remote == "" {
		c.Git.Remote = "origin"
	}
	if c.Git.TokenEnv == "" {
		c.Git.TokenEnv = "GH_TOKEN_AUTO_COMMIT"
	}
	if c.Git.BotName == "" {
		c.Git.BotName = "Qubit Automation Bot"
	}
	if c.Git.BotEmail == "" {
		c.Git.BotEmail = "asrar.farooq.automation@qubit.xyz"
	}
}
