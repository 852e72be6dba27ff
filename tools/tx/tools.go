// Package tx holds the state-changing transfer tool. It broadcasts real
// transactions; the dispatcher never retries it on its own.
package tx

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/monadtools/monad-mcp-go/chain"
	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/tools/types"
)

type SendTransactionTool struct {
	client   chain.Client
	symbol   string
	decimals int
}

func NewSendTransactionTool(client chain.Client, symbol string, decimals int) *SendTransactionTool {
	return &SendTransactionTool{client: client, symbol: symbol, decimals: decimals}
}

func (t *SendTransactionTool) Name() string { return "sign-and-send-transaction" }
func (t *SendTransactionTool) Description() string {
	return "Sign and send a transaction on Monad testnet"
}
func (t *SendTransactionTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]any{
			"privateKey": map[string]any{"type": "string", "description": "Private key of the sender account"},
			"to":         map[string]any{"type": "string", "description": "Recipient address"},
			"value":      map[string]any{"type": "string", "description": "Amount of " + t.symbol + " to send, as a decimal string"},
			"data":       map[string]any{"type": "string", "description": "Optional hex-encoded call data"},
		},
		Required: []string{"privateKey", "to", "value"},
		Title:    "Sign and Send Transaction",
	}
}

func (t *SendTransactionTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	privateKey := types.StringArg(args, "privateKey")
	to := types.StringArg(args, "to")
	value := types.StringArg(args, "value")
	dataHex := types.StringArg(args, "data")

	if _, err := chain.ParsePrivateKey(privateKey); err != nil {
		return "", types.NewInvalidKeyError(err)
	}
	if !common.IsHexAddress(to) {
		return "", types.NewInvalidAddressError(to)
	}

	amount, err := chain.ParseUnits(value, t.decimals)
	if err != nil {
		return "", types.NewSemanticError(types.SemanticKindInvalidAmount,
			fmt.Sprintf("Invalid value %q: %v", value, err), nil)
	}
	if amount.Sign() < 0 {
		return "", types.NewSemanticError(types.SemanticKindInvalidAmount,
			fmt.Sprintf("Invalid value %q: amount cannot be negative", value), nil)
	}

	var data []byte
	if dataHex != "" {
		data = common.FromHex(dataHex)
		if len(data) == 0 {
			return "", types.NewSemanticError(types.SemanticKindInvalidAmount,
				fmt.Sprintf("Invalid data payload: %s", dataHex), nil)
		}
	}

	hash, err := t.client.SendTransaction(ctx, privateKey, to, amount, data)
	if err != nil {
		return "", types.NewRemoteCallError("Failed to send transaction", err)
	}

	return "Transaction sent successfully. Hash: " + hash, nil
}

// GetAllTools returns the transaction tools bound to the given chain client.
func GetAllTools(client chain.Client, symbol string, decimals int) []types.Tool {
	return []types.Tool{
		NewSendTransactionTool(client, symbol, decimals),
	}
}
