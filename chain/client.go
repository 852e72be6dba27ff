// Package chain wraps the remote node RPC surface the tool handlers rely
// on: balance and nonce reads, fee estimation, and signed transfer
// submission. Errors from the node come back as opaque messages; callers
// format them into tool failure text.
package chain

import (
	"context"
	"math/big"
)

// FeeEstimate carries the EIP-1559 fee components of the current network
// estimate. MaxFeePerGas may be nil when the node reports no value;
// callers treat nil as zero.
type FeeEstimate struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Client is the capability the dispatch core requires from the remote
// chain. All amounts are denominated in the smallest unit (wei).
type Client interface {
	// Balance returns the account balance at the latest block.
	Balance(ctx context.Context, address string) (*big.Int, error)

	// Nonce returns the account's next transaction count, pending
	// transactions included.
	Nonce(ctx context.Context, address string) (uint64, error)

	// EstimateFeesPerGas returns the current fee estimate.
	EstimateFeesPerGas(ctx context.Context) (FeeEstimate, error)

	// SendTransaction signs a value transfer with the supplied private
	// key and broadcasts it, returning the transaction hash. This is an
	// irreversible side effect; callers must not retry on ambiguous
	// failures.
	SendTransaction(ctx context.Context, privateKeyHex, to string, value *big.Int, data []byte) (string, error)

	// ChainID returns the configured chain identifier.
	ChainID() *big.Int

	// Close releases the underlying RPC connection.
	Close()
}
