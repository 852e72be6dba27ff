// Package gas exposes the network fee estimate as a tool.
package gas

import (
	"context"

	"github.com/monadtools/monad-mcp-go/chain"
	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/tools/types"
)

const gweiDecimals = 9

type GasPriceTool struct {
	client chain.Client
}

func NewGasPriceTool(client chain.Client) *GasPriceTool {
	return &GasPriceTool{client: client}
}

func (t *GasPriceTool) Name() string { return "get-gas-price" }
func (t *GasPriceTool) Description() string {
	return "Get the current gas price estimate on Monad testnet"
}
func (t *GasPriceTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type:       "object",
		Properties: map[string]any{},
		Required:   []string{},
		Title:      "Get Gas Price",
	}
}

func (t *GasPriceTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	estimate, err := t.client.EstimateFeesPerGas(ctx)
	if err != nil {
		return "", types.NewRemoteCallError("Failed to retrieve gas price", err)
	}

	// A missing max fee reads as zero, not as a failure.
	return "Current gas price: " + chain.FormatUnits(estimate.MaxFeePerGas, gweiDecimals) + " Gwei", nil
}

// GetAllTools returns the gas tools bound to the given chain client.
func GetAllTools(client chain.Client) []types.Tool {
	return []types.Tool{
		NewGasPriceTool(client),
	}
}
