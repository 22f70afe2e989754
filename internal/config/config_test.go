package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cliprelay/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMinimal(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"web_app_url": "https://example.com/exec"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.WebAppURL != "https://example.com/exec" {
		t.Errorf("WebAppURL = %q", cfg.WebAppURL)
	}
	if cfg.Who != "LB" {
		t.Errorf("expected default who, got %q", cfg.Who)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("expected default poll interval, got %v", cfg.PollInterval)
	}
	if cfg.UnknownTag != domain.UnknownMapToDefault {
		t.Errorf("expected map-to-default, got %v", cfg.UnknownTag)
	}
	if cfg.AuthMode != AuthNone {
		t.Errorf("expected auth none, got %q", cfg.AuthMode)
	}
	if cfg.Tags["todo"] != "TODO" {
		t.Errorf("expected default tag map, got %v", cfg.Tags)
	}
	if len(cfg.OAuth.Scopes) != 3 {
		t.Errorf("expected default scopes, got %v", cfg.OAuth.Scopes)
	}
}

func TestLoadFull(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"web_app_url": "https://example.com/exec",
		"doc_url": "https://docs.example.com/d/1",
		"who": "PB",
		"poll_interval": 2,
		"unknown_tag": "ignore",
		"auth_mode": "oauth-user",
		"oauth": {
			"scopes": ["openid"],
			"client_secrets_file": "secrets/client.json",
			"token_file": "/var/lib/cliprelay/token.json"
		},
		"tag_map": {"IDEA": "Ideas"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.UnknownTag != domain.UnknownIgnore {
		t.Errorf("UnknownTag = %v", cfg.UnknownTag)
	}
	if cfg.AuthMode != AuthOAuthUser {
		t.Errorf("AuthMode = %q", cfg.AuthMode)
	}
	if got, want := cfg.OAuth.ClientSecretsFile, filepath.Join(dir, "secrets/client.json"); got != want {
		t.Errorf("ClientSecretsFile = %q, expected %q (relative paths resolve against the config dir)", got, want)
	}
	if cfg.OAuth.TokenFile != "/var/lib/cliprelay/token.json" {
		t.Errorf("TokenFile = %q, absolute path should be kept", cfg.OAuth.TokenFile)
	}
	if len(cfg.OAuth.Scopes) != 1 || cfg.OAuth.Scopes[0] != "openid" {
		t.Errorf("Scopes = %v", cfg.OAuth.Scopes)
	}
	if cfg.Tags["idea"] != "Ideas" || cfg.Tags["todo"] != "TODO" {
		t.Errorf("Tags = %v", cfg.Tags)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing endpoint",
			content: `{"who": "LB"}`,
			wantErr: "web_app_url",
		},
		{
			name:    "bad unknown tag policy",
			content: `{"web_app_url": "https://x", "unknown_tag": "drop"}`,
			wantErr: "unknown_tag",
		},
		{
			name:    "bad auth mode",
			content: `{"web_app_url": "https://x", "auth_mode": "basic"}`,
			wantErr: "auth_mode",
		},
		{
			name:    "negative poll interval",
			content: `{"web_app_url": "https://x", "poll_interval": -1}`,
			wantErr: "poll_interval",
		},
		{
			name:    "blank scopes",
			content: `{"web_app_url": "https://x", "oauth": {"scopes": ["  "]}}`,
			wantErr: "scopes",
		},
		{
			name:    "invalid json",
			content: `{`,
			wantErr: "parsing config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should name the missing file: %v", err)
	}
}
