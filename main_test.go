package main

import (
	"strings"
	"testing"

	"github.com/monadtools/monad-mcp-go/config"
	"github.com/monadtools/monad-mcp-go/transport/shared"
)

func TestChainInfoReader(t *testing.T) {
	cfg := config.NewConfig()
	reader := chainInfoReader(cfg)

	payload, err := reader(shared.ChainInfoResourceURI)
	if err != nil {
		t.Fatalf("reader failed for known URI: %v", err)
	}
	info, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload is %T, want map", payload)
	}
	if info["chain_id"] != cfg.Chain.ChainID {
		t.Errorf("chain_id = %v, want %v", info["chain_id"], cfg.Chain.ChainID)
	}
	if info["symbol"] != cfg.Chain.Symbol {
		t.Errorf("symbol = %v, want %v", info["symbol"], cfg.Chain.Symbol)
	}
}

func TestChainInfoReaderUnknownURI(t *testing.T) {
	reader := chainInfoReader(config.NewConfig())

	_, err := reader("monad://not/a/resource")
	if err == nil {
		t.Fatal("reader should reject unknown URIs")
	}
	if !strings.Contains(err.Error(), "monad://not/a/resource") {
		t.Errorf("error %q does not name the URI", err)
	}
}
