package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

var (
	addressRe    = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	privateKeyRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	txHashRe     = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	walletNameRe = regexp.MustCompile(`^[A-Za-z0-9 ]{1,20}$`)
)

// Address reports whether s is a 0x-prefixed 20-byte hex address.
func Address(s string) bool {
	return addressRe.MatchString(s)
}

// PrivateKey reports whether s is a 0x-prefixed 32-byte hex key.
func PrivateKey(s string) bool {
	return privateKeyRe.MatchString(s)
}

// TxHash reports whether s is a 0x-prefixed 32-byte hex hash.
func TxHash(s string) bool {
	return txHashRe.MatchString(s)
}

// WalletName allows short alphanumeric names.
func WalletName(s string) bool {
	return walletNameRe.MatchString(s)
}

// Amount parses a positive decimal amount.
func Amount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Percentage parses a value in (0, 100].
func Percentage(s string) (float64, bool) {
	v, ok := Amount(s)
	if !ok || v > 100 {
		return 0, false
	}
	return v, true
}

// Slippage parses an integer percentage in [1, 20].
func Slippage(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 20 {
		return 0, false
	}
	return v, true
}

// GasTier normalizes and checks the gas price tier.
func GasTier(s string) (string, bool) {
	tier := strings.ToLower(strings.TrimSpace(s))
	switch tier {
	case "slow", "standard", "fast":
		return tier, true
	}
	return "", false
}

// AlertCondition checks a price alert condition keyword.
func AlertCondition(s string) (string, bool) {
	cond := strings.ToLower(strings.TrimSpace(s))
	switch cond {
	case "above", "below":
		return cond, true
	}
	return "", false
}

// SeedPhrase reports whether s is a valid BIP39 mnemonic.
func SeedPhrase(s string) bool {
	words := strings.Fields(strings.TrimSpace(s))
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return false
	}
	return bip39.IsMnemonicValid(strings.Join(words, " "))
}
