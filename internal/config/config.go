package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cliprelay/internal/domain"
)

// DefaultConfigPath is used when CLIPRELAY_CONFIG is unset and no flag is given.
const DefaultConfigPath = "~/.config/cliprelay/config.json"

// AuthMode selects how deliveries are authenticated.
type AuthMode string

const (
	AuthNone      AuthMode = "none"
	AuthOAuthUser AuthMode = "oauth-user"
)

var defaultScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// OAuth holds the credential-manager settings. File paths are absolute
// after Load: relative paths are resolved against the config directory.
type OAuth struct {
	Scopes            []string
	ClientSecretsFile string
	TokenFile         string
}

// Config is the validated, immutable runtime configuration.
type Config struct {
	WebAppURL    string
	DocURL       string
	Who          string
	PollInterval time.Duration
	UnknownTag   domain.UnknownTagPolicy
	AuthMode     AuthMode
	OAuth        OAuth
	Tags         domain.TagMap
	JournalFile  string
}

// rawConfig mirrors the JSON config file.
type rawConfig struct {
	WebAppURL    string            `json:"web_app_url"`
	DocURL       string            `json:"doc_url"`
	Who          string            `json:"who"`
	PollInterval float64           `json:"poll_interval"` // seconds
	UnknownTag   string            `json:"unknown_tag"`
	AuthMode     string            `json:"auth_mode"`
	OAuth        rawOAuth          `json:"oauth"`
	TagMap       map[string]string `json:"tag_map"`
	JournalFile  string            `json:"journal_file"`
}

type rawOAuth struct {
	Scopes            []string `json:"scopes"`
	ClientSecretsFile string   `json:"client_secrets_file"`
	TokenFile         string   `json:"token_file"`
}

// Path returns the config file path from CLIPRELAY_CONFIG,
// falling back to DefaultConfigPath.
func Path() string {
	if env := os.Getenv("CLIPRELAY_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load reads and validates the config file at path.
// Any error here is fatal to the caller: the watch loop must not start
// on a partial configuration.
func Load(path string) (*Config, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s (copy config.example.json and update values)", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return build(raw, filepath.Dir(path))
}

func build(raw rawConfig, baseDir string) (*Config, error) {
	cfg := &Config{
		WebAppURL: strings.TrimSpace(raw.WebAppURL),
		DocURL:    strings.TrimSpace(raw.DocURL),
		Who:       strings.TrimSpace(raw.Who),
		Tags:      domain.MergeTagMap(raw.TagMap),
	}

	if cfg.WebAppURL == "" {
		return nil, fmt.Errorf("config is missing required field: web_app_url")
	}
	if cfg.Who == "" {
		cfg.Who = "LB"
	}

	interval := raw.PollInterval
	if interval == 0 {
		interval = 0.5
	}
	if interval < 0 {
		return nil, fmt.Errorf("poll_interval must be positive, got %v", raw.PollInterval)
	}
	cfg.PollInterval = time.Duration(interval * float64(time.Second))

	switch strings.TrimSpace(raw.UnknownTag) {
	case "", "map-to-default":
		cfg.UnknownTag = domain.UnknownMapToDefault
	case "ignore":
		cfg.UnknownTag = domain.UnknownIgnore
	default:
		return nil, fmt.Errorf("unknown_tag must be 'map-to-default' or 'ignore', got %q", raw.UnknownTag)
	}

	switch AuthMode(strings.TrimSpace(raw.AuthMode)) {
	case "", AuthNone:
		cfg.AuthMode = AuthNone
	case AuthOAuthUser:
		cfg.AuthMode = AuthOAuthUser
	default:
		return nil, fmt.Errorf("auth_mode must be 'none' or 'oauth-user', got %q", raw.AuthMode)
	}

	oauth, err := buildOAuth(raw.OAuth, baseDir)
	if err != nil {
		return nil, err
	}
	cfg.OAuth = oauth

	journal := strings.TrimSpace(raw.JournalFile)
	if journal == "" {
		journal = "journal.db"
	}
	if cfg.JournalFile, err = resolvePath(baseDir, journal); err != nil {
		return nil, err
	}

	return cfg, nil
}

func buildOAuth(raw rawOAuth, baseDir string) (OAuth, error) {
	oauth := OAuth{
		ClientSecretsFile: strings.TrimSpace(raw.ClientSecretsFile),
		TokenFile:         strings.TrimSpace(raw.TokenFile),
	}
	if oauth.ClientSecretsFile == "" {
		oauth.ClientSecretsFile = "oauth_client_secret.json"
	}
	if oauth.TokenFile == "" {
		oauth.TokenFile = ".secrets/oauth_token.json"
	}

	for _, scope := range raw.Scopes {
		if s := strings.TrimSpace(scope); s != "" {
			oauth.Scopes = append(oauth.Scopes, s)
		}
	}
	if len(raw.Scopes) > 0 && len(oauth.Scopes) == 0 {
		return OAuth{}, fmt.Errorf("oauth.scopes must contain at least one non-empty scope")
	}
	if len(oauth.Scopes) == 0 {
		oauth.Scopes = append([]string(nil), defaultScopes...)
	}

	var err error
	if oauth.ClientSecretsFile, err = resolvePath(baseDir, oauth.ClientSecretsFile); err != nil {
		return OAuth{}, err
	}
	if oauth.TokenFile, err = resolvePath(baseDir, oauth.TokenFile); err != nil {
		return OAuth{}, err
	}
	return oauth, nil
}

// resolvePath makes raw absolute, resolving relative paths against baseDir.
func resolvePath(baseDir, raw string) (string, error) {
	expanded, err := expandHome(raw)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Clean(filepath.Join(baseDir, expanded)), nil
}

func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
