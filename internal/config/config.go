// Package config provides configuration loading and defaults for the
// confcms-mcp server and CLI.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// DatoCMSURL is the fixed GraphQL endpoint of the primary CMS.
const DatoCMSURL = "https://graphql.datocms.com/"

// SlugFilter holds allowlist and denylist glob patterns matched against
// content slugs.
type SlugFilter struct {
	Allowlist []string `yaml:"allowlist"`
	Denylist  []string `yaml:"denylist"`
}

// VisibilityConfig groups slug filters per content kind. Jobs carry no slug
// and are never filtered.
type VisibilityConfig struct {
	Speakers SlugFilter `yaml:"speakers"`
	Stages   SlugFilter `yaml:"stages"`
	Sponsors SlugFilter `yaml:"sponsors"`
}

// AuditConfig controls audit logging behaviour.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogPath string `yaml:"log_path"`
}

// ServerConfig holds network and authentication settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// GraphQLConfig holds connection details for one GraphQL backend.
type GraphQLConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	// Timeout is the HTTP request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// ContentConfig holds the Content Hub type identifiers used to build the
// dynamic stage and job queries.
type ContentConfig struct {
	StageTypeID      string `yaml:"stage_type_id"`
	JobPostingTypeID string `yaml:"job_posting_type_id"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Audit      AuditConfig      `yaml:"audit"`
	DatoCMS    GraphQLConfig    `yaml:"datocms"`
	ContentHub GraphQLConfig    `yaml:"content_hub"`
	Content    ContentConfig    `yaml:"content"`
	Visibility VisibilityConfig `yaml:"visibility"`
}

// LoadConfig reads and parses a YAML configuration file from the given path.
// Keys missing from the file keep the values from DefaultConfig.
// On error, nil is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a new Config populated with sensible default values.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Audit: AuditConfig{
			Enabled: true,
			LogPath: "/config/audit.log",
		},
		DatoCMS: GraphQLConfig{
			URL:     DatoCMSURL,
			Timeout: 30,
		},
		ContentHub: GraphQLConfig{
			Timeout: 30,
		},
	}
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Empty variables are ignored. Recognized variables:
//   - CONFCMS_MCP_AUTH_TOKEN overrides cfg.Server.AuthToken
//   - DATOCMS_READ_ONLY_API_TOKEN overrides cfg.DatoCMS.Token
//   - SITECORE_CONTENT_HUB_ENDPOINT overrides cfg.ContentHub.URL
//   - SITECORE_CONTENT_HUB_READ_ONLY_API_KEY overrides cfg.ContentHub.Token
//   - STAGE_TYPE_ID overrides cfg.Content.StageTypeID
//   - JOB_POSTING_TYPE_ID overrides cfg.Content.JobPostingTypeID
func ApplyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env string
		dst *string
	}{
		{"CONFCMS_MCP_AUTH_TOKEN", &cfg.Server.AuthToken},
		{"DATOCMS_READ_ONLY_API_TOKEN", &cfg.DatoCMS.Token},
		{"SITECORE_CONTENT_HUB_ENDPOINT", &cfg.ContentHub.URL},
		{"SITECORE_CONTENT_HUB_READ_ONLY_API_KEY", &cfg.ContentHub.Token},
		{"STAGE_TYPE_ID", &cfg.Content.StageTypeID},
		{"JOB_POSTING_TYPE_ID", &cfg.Content.JobPostingTypeID},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate reports every missing or malformed value in cfg. The returned
// error joins one error per problem and is nil when cfg is complete.
func (cfg *Config) Validate() error {
	var errs []error
	check := func(name string, gc GraphQLConfig) {
		if gc.URL == "" {
			errs = append(errs, fmt.Errorf("%s: url is required", name))
		} else if u, err := url.Parse(gc.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: url %q is not an absolute http(s) URL", name, gc.URL))
		}
		if gc.Token == "" {
			errs = append(errs, fmt.Errorf("%s: token is required", name))
		}
	}
	check("datocms", cfg.DatoCMS)
	check("content_hub", cfg.ContentHub)

	if cfg.Content.StageTypeID == "" {
		errs = append(errs, errors.New("content: stage_type_id is required"))
	}
	if cfg.Content.JobPostingTypeID == "" {
		errs = append(errs, errors.New("content: job_posting_type_id is required"))
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server: port %d out of range", cfg.Server.Port))
	}
	return errors.Join(errs...)
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.Server.AuthToken is empty. It returns the token (existing or generated)
// and any error encountered during generation.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded cryptographically
// random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
