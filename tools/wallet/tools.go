// Package wallet holds the read-only account tools: balance and
// transaction count lookups.
package wallet

import (
	"context"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/monadtools/monad-mcp-go/chain"
	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/tools/types"
)

type BalanceTool struct {
	client   chain.Client
	symbol   string
	decimals int
}

func NewBalanceTool(client chain.Client, symbol string, decimals int) *BalanceTool {
	return &BalanceTool{client: client, symbol: symbol, decimals: decimals}
}

func (t *BalanceTool) Name() string { return "get-mon-balance" }
func (t *BalanceTool) Description() string {
	return "Get MON balance for an address on Monad testnet"
}
func (t *BalanceTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]any{
			"address": map[string]any{"type": "string", "description": "Monad testnet address to check balance for"},
		},
		Required: []string{"address"},
		Title:    "Get MON Balance",
	}
}

func (t *BalanceTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	address := types.StringArg(args, "address")
	if !common.IsHexAddress(address) {
		return "", types.NewInvalidAddressError(address)
	}

	balance, err := t.client.Balance(ctx, address)
	if err != nil {
		return "", types.NewRemoteCallError(
			"Failed to retrieve balance for address: "+address, err)
	}

	return "Balance for " + address + ": " +
		chain.FormatUnits(balance, t.decimals) + " " + t.symbol, nil
}

type TransactionCountTool struct {
	client chain.Client
}

func NewTransactionCountTool(client chain.Client) *TransactionCountTool {
	return &TransactionCountTool{client: client}
}

func (t *TransactionCountTool) Name() string { return "get-transaction-count" }
func (t *TransactionCountTool) Description() string {
	return "Get the transaction count (nonce) for an address"
}
func (t *TransactionCountTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]any{
			"address": map[string]any{"type": "string", "description": "Address to get the transaction count for"},
		},
		Required: []string{"address"},
		Title:    "Get Transaction Count",
	}
}

func (t *TransactionCountTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	address := types.StringArg(args, "address")
	if !common.IsHexAddress(address) {
		return "", types.NewInvalidAddressError(address)
	}

	nonce, err := t.client.Nonce(ctx, address)
	if err != nil {
		return "", types.NewRemoteCallError(
			"Failed to retrieve transaction count for address: "+address, err)
	}

	return strconv.FormatUint(nonce, 10), nil
}

// GetAllTools returns the wallet tools bound to the given chain client.
func GetAllTools(client chain.Client, symbol string, decimals int) []types.Tool {
	return []types.Tool{
		NewBalanceTool(client, symbol, decimals),
		NewTransactionCountTool(client),
	}
}
