package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "cliprelay/internal/adapters/mcp"
	"cliprelay/internal/adapters/oauth"
	"cliprelay/internal/adapters/sqlite"
	"cliprelay/internal/adapters/webhook"
	"cliprelay/internal/config"
	"cliprelay/internal/ports"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("cliprelay-mcp: %v", err)
	}

	journal, err := sqlite.OpenJournal(cfg.JournalFile)
	if err != nil {
		log.Fatalf("cliprelay-mcp: %v", err)
	}
	defer journal.Close()

	var creds ports.CredentialSource
	if cfg.AuthMode == config.AuthOAuthUser {
		creds = oauth.NewManager(oauth.Options{
			ClientSecretsFile: cfg.OAuth.ClientSecretsFile,
			TokenFile:         cfg.OAuth.TokenFile,
			Scopes:            cfg.OAuth.Scopes,
		})
	}

	mcpServer := server.NewMCPServer(
		"cliprelay-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, journal, cfg.Tags)
	mcpadapter.RegisterWriteTools(mcpServer, mcpadapter.SendOptions{
		Deliverer:  webhook.NewClient(cfg.WebAppURL, cfg.Who, creds),
		Journal:    journal,
		Tags:       cfg.Tags,
		UnknownTag: cfg.UnknownTag,
		Who:        cfg.Who,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("cliprelay-mcp: %v", err)
	}
}
