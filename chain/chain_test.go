package chain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const (
	testWallet = "0xAbCd35Cc6634C0532925a3b8D4f25177d9b81111"
	testToken  = "0x1111111111111111111111111111111111111111"
	deadToken  = "0x2222222222222222222222222222222222222222"
)

// abiString encodes a string the way an ERC-20 symbol() call returns it
func abiString(s string) string {
	hexData := fmt.Sprintf("%x", s)
	padded := hexData + strings.Repeat("0", 64-len(hexData)%64)
	return fmt.Sprintf("0x%064x%064x%s", 32, len(s), padded)
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		method := gjson.GetBytes(body, "method").String()
		id := gjson.GetBytes(body, "id").Int()

		reply := func(result string) {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":"%s"}`, id, result)
		}

		switch method {
		case "eth_getBalance":
			// 2.5 MON
			reply("0x22b1c8c1227a0000")
		case "eth_call":
			to := gjson.GetBytes(body, "params.0.to").String()
			data := gjson.GetBytes(body, "params.0.data").String()

			if strings.EqualFold(to, deadToken) {
				fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32000,"message":"execution reverted"}}`, id)
				return
			}

			switch {
			case strings.HasPrefix(data, selBalanceOf):
				// 1500 tokens with 6 decimals
				reply(fmt.Sprintf("0x%064x", 1500_000000))
			case data == selDecimals:
				reply(fmt.Sprintf("0x%064x", 6))
			case data == selSymbol:
				fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":"%s"}`, id, abiString("USDC"))
			default:
				reply("0x")
			}
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"method not found"}}`, id)
		}
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func TestBalance(t *testing.T) {
	c := newTestClient(t)

	mon, err := c.Balance(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if mon != 2.5 {
		t.Errorf("Balance = %f, expected 2.5", mon)
	}
}

func TestTokenBalance(t *testing.T) {
	c := newTestClient(t)

	holding, err := c.TokenBalance(context.Background(), testToken, testWallet)
	if err != nil {
		t.Fatalf("TokenBalance failed: %v", err)
	}
	if holding.Amount != 1500 {
		t.Errorf("Amount = %f, expected 1500", holding.Amount)
	}
	if holding.Decimals != 6 {
		t.Errorf("Decimals = %d, expected 6", holding.Decimals)
	}
	if holding.Symbol != "USDC" {
		t.Errorf("Symbol = %q, expected USDC", holding.Symbol)
	}
}

func TestPortfolioSkipsFailedTokens(t *testing.T) {
	c := newTestClient(t)

	p, err := c.Portfolio(context.Background(), testWallet, []string{testToken, deadToken})
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}
	if p.MON != 2.5 {
		t.Errorf("MON = %f, expected 2.5", p.MON)
	}
	if len(p.Holdings) != 1 {
		t.Fatalf("Holdings = %d, expected the reverting token to be skipped", len(p.Holdings))
	}
	if p.Holdings[0].Token != testToken {
		t.Errorf("Kept holding = %s", p.Holdings[0].Token)
	}
}

func TestParseHexBig(t *testing.T) {
	cases := map[string]bool{
		"0x0":   true,
		"0x1a":  true,
		"0x":    true,
		"0xzz":  false,
		"hello": false,
	}
	for in, ok := range cases {
		_, err := parseHexBig(in)
		if (err == nil) != ok {
			t.Errorf("parseHexBig(%q) err = %v, expected ok=%v", in, err, ok)
		}
	}
}

func TestRPCErrorSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"header not found"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Balance(context.Background(), testWallet)
	if err == nil || !strings.Contains(err.Error(), "header not found") {
		t.Errorf("RPC error not surfaced: %v", err)
	}
}
