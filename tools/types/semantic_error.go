package types

import (
	"errors"
	"fmt"
)

const (
	SemanticKindInvalidAddress = "invalid_address"
	SemanticKindInvalidKey     = "invalid_key"
	SemanticKindInvalidAmount  = "invalid_amount"
	SemanticKindRemoteCall     = "remote_call"
)

// SemanticError marks tool failures whose cause is known (bad address,
// bad key, remote RPC failure) rather than unexpected. The dispatcher
// surfaces the message; Kind and Data ride along for structured callers.
type SemanticError struct {
	Kind    string
	Message string
	Data    map[string]any
}

func (e *SemanticError) Error() string {
	if e == nil {
		return "tool semantic error"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != "" {
		return fmt.Sprintf("tool semantic error: %s", e.Kind)
	}
	return "tool semantic error"
}

func NewSemanticError(kind, message string, data map[string]any) *SemanticError {
	return &SemanticError{Kind: kind, Message: message, Data: data}
}

// NewInvalidAddressError reports a malformed address, naming it.
func NewInvalidAddressError(address string) *SemanticError {
	return NewSemanticError(SemanticKindInvalidAddress,
		fmt.Sprintf("Invalid address: %s", address),
		map[string]any{"address": address})
}

// NewInvalidKeyError classifies a private key parse failure. The key
// material never appears in the message, only the parse failure.
func NewInvalidKeyError(cause error) *SemanticError {
	return NewSemanticError(SemanticKindInvalidKey, fmt.Sprintf("%v", cause), nil)
}

// NewRemoteCallError wraps a chain RPC failure with a templated message.
func NewRemoteCallError(message string, cause error) *SemanticError {
	return NewSemanticError(SemanticKindRemoteCall,
		fmt.Sprintf("%s. Error: %v", message, cause), nil)
}

func AsSemanticError(err error) (*SemanticError, bool) {
	if err == nil {
		return nil, false
	}
	var semanticErr *SemanticError
	if errors.As(err, &semanticErr) {
		return semanticErr, true
	}
	return nil, false
}
