package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// DefaultMaxAttempts bounds the counter search when allocating tag suffixes.
const DefaultMaxAttempts = 50

type Config struct {
	Remote      string `mapstructure:"remote"`
	Root        string `mapstructure:"root"`
	MaxAttempts int    `mapstructure:"max_attempts"`
	DryRun      bool   `mapstructure:"dry_run"`
	Verbose     bool   `mapstructure:"verbose"`
	ReportDir   string `mapstructure:"report_dir"`
	GithubToken string `mapstructure:"github_token"`
	GithubOwner string `mapstructure:"github_owner"`
	GithubRepo  string `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Remote:      "origin",
		Root:        ".",
		MaxAttempts: DefaultMaxAttempts,
		ReportDir:   ".tag-report",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	if c.MaxAttempts < 2 {
		return fmt.Errorf("max_attempts must be at least 2, got %d", c.MaxAttempts)
	}
	if c.Root == "" {
		return fmt.Errorf("root cannot be empty")
	}
	if strings.Contains(c.ReportDir, "..") {
		return fmt.Errorf("report_dir contains invalid path traversal")
	}
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
	}
	return nil
}

// UseGithubOracle reports whether tag existence checks should go through
// the GitHub API instead of the git transport.
func (c *Config) UseGithubOracle() bool {
	return c.GithubToken != "" && c.GithubOwner != "" && c.GithubRepo != ""
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	// Validate token format patterns
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".check-tag")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("CHECK_TAG")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	if err := viper.BindEnv("github_token", "GITHUB_TOKEN", "CHECK_TAG_GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github_token env: %w", err)
	}
	if err := viper.BindEnv("github_owner", "GITHUB_REPOSITORY_OWNER", "CHECK_TAG_GITHUB_OWNER"); err != nil {
		return nil, fmt.Errorf("failed to bind github_owner env: %w", err)
	}
	if err := viper.BindEnv("github_repo", "CHECK_TAG_GITHUB_REPO"); err != nil {
		return nil, fmt.Errorf("failed to bind github_repo env: %w", err)
	}
	if err := viper.BindEnv("remote", "CHECK_TAG_REMOTE"); err != nil {
		return nil, fmt.Errorf("failed to bind remote env: %w", err)
	}
	if err := viper.BindEnv("dry_run", "CHECK_TAG_DRY_RUN"); err != nil {
		return nil, fmt.Errorf("failed to bind dry_run env: %w", err)
	}
	if err := viper.BindEnv("max_attempts", "CHECK_TAG_MAX_ATTEMPTS"); err != nil {
		return nil, fmt.Errorf("failed to bind max_attempts env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("remote", defaults.Remote)
	viper.SetDefault("root", defaults.Root)
	viper.SetDefault("max_attempts", defaults.MaxAttempts)
	viper.SetDefault("report_dir", defaults.ReportDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	// Derive owner/repo from GITHUB_REPOSITORY (format: owner/repo) when unset
	applyRepositoryEnv(&config)
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// applyRepositoryEnv fills github_owner/github_repo from the combined
// GITHUB_REPOSITORY variable set by GitHub Actions.
func applyRepositoryEnv(c *Config) {
	repoEnv := os.Getenv("GITHUB_REPOSITORY")
	if repoEnv == "" {
		return
	}
	idx := strings.Index(repoEnv, "/")
	if idx <= 0 || idx >= len(repoEnv)-1 {
		return
	}
	if c.GithubOwner == "" {
		c.GithubOwner = repoEnv[:idx]
	}
	if c.GithubRepo == "" {
		c.GithubRepo = repoEnv[idx+1:]
	}
}
