package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/monadtools/monad-mcp-go/logger"
)

const transferGasLimit = 21000

// rpcClient is the ethclient-backed Client implementation.
type rpcClient struct {
	eth     *ethclient.Client
	chainID *big.Int
}

// Dial connects to the chain RPC endpoint. The connection is shared and
// read-only after construction; every dispatch goes through the same
// handle.
func Dial(rpcURL string, chainID int64) (Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint %s: %w", rpcURL, err)
	}
	logger.Info("Connected to chain RPC", "url", rpcURL, "chain_id", chainID)
	return &rpcClient{
		eth:     eth,
		chainID: big.NewInt(chainID),
	}, nil
}

func (c *rpcClient) Balance(ctx context.Context, address string) (*big.Int, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return c.eth.BalanceAt(ctx, addr, nil)
}

func (c *rpcClient) Nonce(ctx context.Context, address string) (uint64, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return 0, err
	}
	return c.eth.PendingNonceAt(ctx, addr)
}

func (c *rpcClient) EstimateFeesPerGas(ctx context.Context) (FeeEstimate, error) {
	tip, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return FeeEstimate{}, err
	}

	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return FeeEstimate{}, err
	}

	estimate := FeeEstimate{MaxPriorityFeePerGas: tip}
	if head.BaseFee != nil {
		// maxFee = 2*baseFee + tip, headroom for one full base fee bump.
		maxFee := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
		estimate.MaxFeePerGas = maxFee.Add(maxFee, tip)
	}
	return estimate, nil
}

func (c *rpcClient) SendTransaction(ctx context.Context, privateKeyHex, to string, value *big.Int, data []byte) (string, error) {
	key, err := ParsePrivateKey(privateKeyHex)
	if err != nil {
		return "", err
	}
	toAddr, err := ParseAddress(to)
	if err != nil {
		return "", err
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	nonce, err := c.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to fetch nonce for %s: %w", from.Hex(), err)
	}

	fees, err := c.EstimateFeesPerGas(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to estimate fees: %w", err)
	}
	maxFee := fees.MaxFeePerGas
	if maxFee == nil {
		maxFee = new(big.Int)
	}
	tip := fees.MaxPriorityFeePerGas
	if tip == nil {
		tip = new(big.Int)
	}

	gasLimit := uint64(transferGasLimit)
	if len(data) > 0 {
		gasLimit, err = c.eth.EstimateGas(ctx, ethereum.CallMsg{
			From:  from,
			To:    &toAddr,
			Value: value,
			Data:  data,
		})
		if err != nil {
			return "", fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: maxFee,
		Gas:       gasLimit,
		To:        &toAddr,
		Value:     value,
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return "", err
	}

	logger.Info("Transaction broadcast", "hash", signed.Hash().Hex(), "from", from.Hex(), "to", toAddr.Hex())
	return signed.Hash().Hex(), nil
}

func (c *rpcClient) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *rpcClient) Close() {
	c.eth.Close()
}

// ParseAddress validates a 0x-prefixed hex address.
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address: %s", address)
	}
	return common.HexToAddress(address), nil
}

// ParsePrivateKey decodes a hex-encoded secp256k1 private key, with or
// without the 0x prefix.
func ParsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}
	return key, nil
}
