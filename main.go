package main

import (
	"fmt"
	"log"
	"os"

	"github.com/monadtools/monad-mcp-go/chain"
	"github.com/monadtools/monad-mcp-go/config"
	"github.com/monadtools/monad-mcp-go/logger"
	"github.com/monadtools/monad-mcp-go/prompts"
	"github.com/monadtools/monad-mcp-go/tools"
	"github.com/monadtools/monad-mcp-go/tools/gas"
	"github.com/monadtools/monad-mcp-go/tools/tx"
	"github.com/monadtools/monad-mcp-go/tools/wallet"
	transporthttp "github.com/monadtools/monad-mcp-go/transport/http"
	"github.com/monadtools/monad-mcp-go/transport/shared"
	"github.com/monadtools/monad-mcp-go/transport/stdio"
)

func main() {
	// Load configuration
	configPath, err := config.ResolveConfigPath()
	if err != nil {
		log.Fatalf("Failed to resolve config path: %+v", err)
	}
	if err := config.EnsureDefaultConfig(configPath); err != nil {
		log.Fatalf("Failed to write default config: %+v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %+v", err)
	}

	// Initialize logger. Stdout carries protocol frames, so Init
	// targets stderr plus the configured log file.
	if err := logger.Init(logger.GetLevelFromString(cfg.Logging.Level), logger.Format(cfg.Logging.Format), cfg.Logging.Path); err != nil {
		log.Fatalf("Failed to initialize logger: %+v", err)
	}
	if cfg.Server.Debug {
		logger.SetDefaultLevel(logger.GetLevelFromString("debug"))
	}

	// Connect to the chain RPC endpoint
	client, err := chain.Dial(cfg.Chain.RPCURL, cfg.Chain.ChainID)
	if err != nil {
		logger.Error("Failed to connect to RPC endpoint", "rpc_url", cfg.Chain.RPCURL, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// Register tools. A duplicate or invalid registration is a
	// startup defect and aborts the process.
	manager := tools.NewManager()
	if err := manager.RegisterAll(wallet.GetAllTools(client, cfg.Chain.Symbol, cfg.Chain.Decimals)); err != nil {
		logger.Error("Failed to register wallet tools", "error", err)
		os.Exit(1)
	}
	if err := manager.RegisterAll(gas.GetAllTools(client)); err != nil {
		logger.Error("Failed to register gas tools", "error", err)
		os.Exit(1)
	}
	if err := manager.RegisterAll(tx.GetAllTools(client, cfg.Chain.Symbol, cfg.Chain.Decimals)); err != nil {
		logger.Error("Failed to register transaction tools", "error", err)
		os.Exit(1)
	}

	promptRegistry := prompts.NewDefaultRegistry()
	readResource := chainInfoReader(cfg)

	// Reload the log level when the config file changes on disk.
	stopWatch, err := config.Watch(configPath, func(updated *config.Config) {
		logger.SetDefaultLevel(logger.GetLevelFromString(updated.Logging.Level))
		logger.Info("Configuration reloaded", "log_level", updated.Logging.Level)
	})
	if err != nil {
		logger.Warn("Config watch unavailable", "error", err)
	} else {
		defer stopWatch()
	}

	info := shared.ServerInfo{Name: cfg.Name, Version: cfg.Version}

	if cfg.TransportEnabled("streamable_http") && os.Getenv("MCP_USE_STDIO") != "true" {
		server := transporthttp.NewServer(cfg, manager, promptRegistry, readResource)
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
		return
	}

	server := stdio.NewServer(manager, promptRegistry, info, readResource)
	if err := server.Start(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// chainInfoReader serves the monad://chain/info resource.
func chainInfoReader(cfg *config.Config) shared.ResourceReader {
	return func(uri string) (any, error) {
		if uri != shared.ChainInfoResourceURI {
			return nil, fmt.Errorf("unknown resource: %s", uri)
		}
		return map[string]any{
			"chain_id": cfg.Chain.ChainID,
			"rpc_url":  cfg.Chain.RPCURL,
			"symbol":   cfg.Chain.Symbol,
			"decimals": cfg.Chain.Decimals,
		}, nil
	}
}
