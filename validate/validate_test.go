package validate

import (
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip39"
)

func TestAddress(t *testing.T) {
	valid := "0x742d35Cc6634C0532925a3b8D4f25177d9b88888"
	if !Address(valid) {
		t.Errorf("Valid address rejected: %s", valid)
	}

	invalid := []string{
		"",
		"742d35Cc6634C0532925a3b8D4f25177d9b88888",    // no 0x
		"0x742d35Cc6634C0532925a3b8D4f25177d9b8888",   // 39 hex chars
		"0x742d35Cc6634C0532925a3b8D4f25177d9b888888", // 41 hex chars
		"0x742d35Cc6634C0532925a3b8D4f25177d9b8888g",  // non-hex
		"0x" + strings.Repeat("a", 64),                // private key length
	}
	for _, a := range invalid {
		if Address(a) {
			t.Errorf("Invalid address accepted: %q", a)
		}
	}
}

func TestPrivateKey(t *testing.T) {
	if !PrivateKey("0x" + strings.Repeat("ab", 32)) {
		t.Error("Valid private key rejected")
	}
	if PrivateKey("0x" + strings.Repeat("ab", 20)) {
		t.Error("Address-length key accepted")
	}
	if PrivateKey(strings.Repeat("ab", 32)) {
		t.Error("Key without 0x accepted")
	}
}

func TestAmount(t *testing.T) {
	if v, ok := Amount("0.05"); !ok || v != 0.05 {
		t.Errorf("Amount(0.05) = %v, %v", v, ok)
	}
	if _, ok := Amount("  1.5 "); !ok {
		t.Error("Whitespace-padded amount rejected")
	}
	for _, s := range []string{"", "abc", "0", "-1"} {
		if _, ok := Amount(s); ok {
			t.Errorf("Invalid amount accepted: %q", s)
		}
	}
}

func TestPercentage(t *testing.T) {
	if _, ok := Percentage("50"); !ok {
		t.Error("50 rejected")
	}
	if _, ok := Percentage("100"); !ok {
		t.Error("100 rejected")
	}
	if _, ok := Percentage("101"); ok {
		t.Error("101 accepted")
	}
}

func TestSlippage(t *testing.T) {
	cases := map[string]bool{
		"1": true, "3": true, "20": true,
		"0": false, "21": false, "2.5": false, "abc": false,
	}
	for in, want := range cases {
		if _, ok := Slippage(in); ok != want {
			t.Errorf("Slippage(%q) ok = %v, expected %v", in, ok, want)
		}
	}
}

func TestGasTier(t *testing.T) {
	if tier, ok := GasTier(" Fast "); !ok || tier != "fast" {
		t.Errorf("GasTier(Fast) = %q, %v", tier, ok)
	}
	if _, ok := GasTier("turbo"); ok {
		t.Error("Unknown tier accepted")
	}
}

func TestSeedPhrase(t *testing.T) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		t.Fatal(err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		t.Fatal(err)
	}

	if !SeedPhrase(mnemonic) {
		t.Error("Generated mnemonic rejected")
	}
	if SeedPhrase("correct horse battery staple") {
		t.Error("4-word phrase accepted")
	}
	if SeedPhrase(strings.Repeat("zebra ", 12)) {
		t.Error("Non-BIP39 words accepted")
	}
}
