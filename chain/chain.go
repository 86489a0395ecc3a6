package chain

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
)

// ERC-20 function selectors
const (
	selBalanceOf   = "0x70a08231"
	selName        = "0x06fdde03"
	selSymbol      = "0x95d89b41"
	selDecimals    = "0x313ce567"
	selTotalSupply = "0x18160ddd"
)

// Client talks to a Monad JSON-RPC endpoint
type Client struct {
	rpcURL     string
	httpClient *http.Client
	nextID     atomic.Int64
}

func New(rpcURL string) *Client {
	return &Client{
		rpcURL:     rpcURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// TokenHolding is a single ERC-20 position in a wallet
type TokenHolding struct {
	Token    string
	Symbol   string
	Decimals int
	Amount   float64
}

// Portfolio aggregates a wallet's native and token balances
type Portfolio struct {
	Wallet   string
	MON      float64
	Holdings []TokenHolding
}

// call sends a single JSON-RPC request and returns the raw result field
func (c *Client) call(ctx context.Context, method string, params string) (gjson.Result, error) {
	id := c.nextID.Add(1)
	payload := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"%s","params":%s}`, id, method, params)

	req, err := http.NewRequestWithContext(ctx, "POST", c.rpcURL, bytes.NewReader([]byte(payload)))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read RPC response: %w", err)
	}

	if resp.StatusCode != 200 {
		return gjson.Result{}, fmt.Errorf("RPC error: status %d", resp.StatusCode)
	}

	if rpcErr := gjson.GetBytes(body, "error.message"); rpcErr.Exists() {
		return gjson.Result{}, fmt.Errorf("RPC error: %s", rpcErr.String())
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("RPC response missing result")
	}

	return result, nil
}

// ethCall invokes a read-only contract method and returns the hex return data
func (c *Client) ethCall(ctx context.Context, contract, data string) (string, error) {
	params := fmt.Sprintf(`[{"to":"%s","data":"%s"},"latest"]`, contract, data)
	result, err := c.call(ctx, "eth_call", params)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

// Balance returns a wallet's native MON balance
func (c *Client) Balance(ctx context.Context, wallet string) (float64, error) {
	params := fmt.Sprintf(`["%s","latest"]`, wallet)
	result, err := c.call(ctx, "eth_getBalance", params)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	wei, err := parseHexBig(result.String())
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance: %w", err)
	}

	return weiToUnits(wei, 18), nil
}

// TokenBalance returns a wallet's balance of a single ERC-20 token,
// scaled by the token's decimals.
func (c *Client) TokenBalance(ctx context.Context, token, wallet string) (*TokenHolding, error) {
	data := selBalanceOf + padAddress(wallet)
	raw, err := c.ethCall(ctx, token, data)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}

	amount, err := parseHexBig(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token balance: %w", err)
	}

	decimals := 18
	if raw, err := c.ethCall(ctx, token, selDecimals); err == nil {
		if d, derr := parseHexBig(raw); derr == nil && d.Int64() <= 36 {
			decimals = int(d.Int64())
		}
	}

	symbol := ""
	if raw, err := c.ethCall(ctx, token, selSymbol); err == nil {
		symbol = decodeString(raw)
	}

	return &TokenHolding{
		Token:    token,
		Symbol:   symbol,
		Decimals: decimals,
		Amount:   weiToUnits(amount, decimals),
	}, nil
}

// Portfolio fetches the native balance plus each tracked token's
// holding. A failed token lookup is skipped, not fatal.
func (c *Client) Portfolio(ctx context.Context, wallet string, tokens []string) (*Portfolio, error) {
	mon, err := c.Balance(ctx, wallet)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{Wallet: wallet, MON: mon}
	for _, token := range tokens {
		holding, err := c.TokenBalance(ctx, token, wallet)
		if err != nil {
			log.Printf("⚠️ Skipping token %s in portfolio: %v", token, err)
			continue
		}
		p.Holdings = append(p.Holdings, *holding)
	}

	return p, nil
}

// parseHexBig parses a 0x-prefixed hex quantity
func parseHexBig(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex quantity: %q", s)
	}
	return n, nil
}

// weiToUnits scales a raw integer amount by the token's decimals
func weiToUnits(n *big.Int, decimals int) float64 {
	f := new(big.Float).SetInt(n)
	div := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	out, _ := new(big.Float).Quo(f, div).Float64()
	return out
}

// padAddress left-pads an address to a 32-byte ABI word
func padAddress(addr string) string {
	addr = strings.ToLower(strings.TrimPrefix(addr, "0x"))
	return strings.Repeat("0", 64-len(addr)) + addr
}

// decodeString decodes a solidity string return value. Falls back to
// empty on anything malformed since symbol/name are cosmetic.
func decodeString(raw string) string {
	raw = strings.TrimPrefix(raw, "0x")
	// offset word + length word + data
	if len(raw) < 128 {
		return ""
	}
	length, err := parseHexBig(raw[64:128])
	if err != nil {
		return ""
	}
	n := int(length.Int64())
	if n <= 0 || 128+n*2 > len(raw) {
		return ""
	}
	decoded, err := hex.DecodeString(raw[128 : 128+n*2])
	if err != nil {
		return ""
	}
	return string(decoded)
}
