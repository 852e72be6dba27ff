package gas

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/monadtools/monad-mcp-go/chain"
)

type mockClient struct {
	estimate func(ctx context.Context) (chain.FeeEstimate, error)
}

func (m *mockClient) Balance(ctx context.Context, address string) (*big.Int, error) {
	return nil, errors.New("not implemented")
}

func (m *mockClient) Nonce(ctx context.Context, address string) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (m *mockClient) EstimateFeesPerGas(ctx context.Context) (chain.FeeEstimate, error) {
	return m.estimate(ctx)
}

func (m *mockClient) SendTransaction(ctx context.Context, privateKeyHex, to string, value *big.Int, data []byte) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockClient) ChainID() *big.Int { return big.NewInt(10143) }
func (m *mockClient) Close()            {}

func TestGasPrice(t *testing.T) {
	client := &mockClient{
		estimate: func(ctx context.Context) (chain.FeeEstimate, error) {
			return chain.FeeEstimate{
				MaxFeePerGas: big.NewInt(52_000_000_000),
			}, nil
		},
	}

	tool := NewGasPriceTool(client)
	text, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(text, "52 Gwei") {
		t.Errorf("Expected text containing '52 Gwei', got %q", text)
	}
}

func TestGasPriceMissingMaxFee(t *testing.T) {
	client := &mockClient{
		estimate: func(ctx context.Context) (chain.FeeEstimate, error) {
			return chain.FeeEstimate{MaxPriorityFeePerGas: big.NewInt(1)}, nil
		},
	}

	tool := NewGasPriceTool(client)
	text, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("A missing max fee should not fail: %v", err)
	}
	if !strings.Contains(text, "0 Gwei") {
		t.Errorf("Expected text containing '0 Gwei', got %q", text)
	}
}

func TestGasPriceRemoteError(t *testing.T) {
	client := &mockClient{
		estimate: func(ctx context.Context) (chain.FeeEstimate, error) {
			return chain.FeeEstimate{}, errors.New("rpc timeout")
		},
	}

	tool := NewGasPriceTool(client)
	_, err := tool.Execute(context.Background(), map[string]any{})
	if err == nil {
		t.Fatal("Expected error for remote failure")
	}
	if !strings.Contains(err.Error(), "rpc timeout") {
		t.Errorf("Error should embed the underlying cause, got %q", err.Error())
	}
}
