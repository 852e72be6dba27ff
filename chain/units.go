package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatUnits renders a smallest-unit amount as a decimal string with the
// given number of fractional digits, trailing zeros trimmed. A nil amount
// formats as "0".
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	value := new(big.Int).Abs(amount)
	scale := pow10(decimals)

	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(value, scale, frac)

	out := whole.String()
	if frac.Sign() != 0 {
		digits := frac.String()
		digits = strings.Repeat("0", decimals-len(digits)) + digits
		out += "." + strings.TrimRight(digits, "0")
	}
	if amount.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// ParseUnits converts a decimal token amount into the smallest unit.
// The fractional part may not exceed the declared number of decimals.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return nil, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(trimmed, "-") {
		negative = true
		trimmed = trimmed[1:]
	}

	wholePart := trimmed
	fracPart := ""
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 {
		wholePart = trimmed[:dot]
		fracPart = trimmed[dot+1:]
	}
	if wholePart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid amount: %s", amount)
	}
	if wholePart == "" {
		wholePart = "0"
	}
	if len(fracPart) > decimals {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}

	// Both parts must be bare digit runs. SetString alone would accept
	// sign characters, turning "1.-5" into a valid-looking amount.
	if !isDigits(wholePart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, fmt.Errorf("invalid amount: %s", amount)
	}

	whole, ok := new(big.Int).SetString(wholePart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", amount)
	}

	result := new(big.Int).Mul(whole, pow10(decimals))
	if fracPart != "" {
		frac, ok := new(big.Int).SetString(fracPart, 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount: %s", amount)
		}
		frac.Mul(frac, pow10(decimals-len(fracPart)))
		result.Add(result, frac)
	}

	if negative {
		result.Neg(result)
	}
	return result, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
