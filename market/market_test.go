package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

const sampleToken = "0x1234567890abcdef1234567890abcdef12345678"

func sampleResponse(priceUSD, priceNative string, liquidityUSD float64) string {
	return fmt.Sprintf(`{
		"schemaVersion": "1.0.0",
		"pairs": [{
			"chainId": "monad",
			"dexId": "uniswap",
			"pairAddress": "0xpair",
			"baseToken": {"address": "%s", "name": "Test Token", "symbol": "TEST"},
			"priceNative": "%s",
			"priceUsd": "%s",
			"txns": {"m5": {"buys": 3, "sells": 1}, "h1": {"buys": 40, "sells": 22}},
			"volume": {"h24": 125000.5},
			"priceChange": {"m5": 0.2, "h1": -1.3, "h24": 12.7},
			"liquidity": {"usd": %f}
		}]
	}`, sampleToken, priceNative, priceUSD, liquidityUSD)
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := New(nil)
	s.baseURL = srv.URL
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	return s
}

func TestTokenInfo(t *testing.T) {
	t.Run("ParsesPair", func(t *testing.T) {
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/"+sampleToken {
				t.Errorf("Unexpected path: %s", r.URL.Path)
			}
			fmt.Fprint(w, sampleResponse("0.05", "0.002", 50000))
		})

		info, err := s.TokenInfo(context.Background(), sampleToken)
		if err != nil {
			t.Fatalf("TokenInfo failed: %v", err)
		}
		if info.Symbol != "TEST" {
			t.Errorf("Symbol = %q, expected TEST", info.Symbol)
		}
		if info.PriceUSD != 0.05 {
			t.Errorf("PriceUSD = %f, expected 0.05", info.PriceUSD)
		}
		if info.Change24h != 12.7 {
			t.Errorf("Change24h = %f, expected 12.7", info.Change24h)
		}
		if info.Buys1h != 40 || info.Sells1h != 22 {
			t.Errorf("Txns = %d/%d, expected 40/22", info.Buys1h, info.Sells1h)
		}
	})

	t.Run("UnknownToken", func(t *testing.T) {
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"schemaVersion": "1.0.0", "pairs": []}`)
		})

		if _, err := s.TokenInfo(context.Background(), sampleToken); err == nil {
			t.Error("Expected error for token with no pairs")
		}
	})

	t.Run("ClientErrorNotRetried", func(t *testing.T) {
		calls := 0
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusNotFound)
		})

		if _, err := s.TokenInfo(context.Background(), sampleToken); err == nil {
			t.Error("Expected error on 404")
		}
		if calls != 1 {
			t.Errorf("4xx was retried %d times", calls)
		}
	})

	t.Run("ServerErrorRetried", func(t *testing.T) {
		calls := 0
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, sampleResponse("0.05", "0.002", 50000))
		})
		s.maxRetries = 1

		info, err := s.TokenInfo(context.Background(), sampleToken)
		if err != nil {
			t.Fatalf("Retry did not recover: %v", err)
		}
		if info.PriceUSD != 0.05 {
			t.Errorf("PriceUSD = %f after retry", info.PriceUSD)
		}
		if calls != 2 {
			t.Errorf("Expected 2 calls, got %d", calls)
		}
	})
}

func TestTokenPrice(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleResponse("1.25", "0.05", 50000))
	})

	price, err := s.TokenPrice(context.Background(), sampleToken)
	if err != nil {
		t.Fatalf("TokenPrice failed: %v", err)
	}
	if price != 1.25 {
		t.Errorf("Price = %f, expected 1.25", price)
	}
}

func TestTradeQuote(t *testing.T) {
	t.Run("Slippage", func(t *testing.T) {
		// 1 token costs 0.002 MON, so 0.1 MON buys 50 tokens
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sampleResponse("0.05", "0.002", 50000))
		})

		q, err := s.TradeQuote(context.Background(), sampleToken, 0.1, 3)
		if err != nil {
			t.Fatalf("TradeQuote failed: %v", err)
		}
		if q.TokensOut != 50 {
			t.Errorf("TokensOut = %f, expected 50", q.TokensOut)
		}
		want := 50 * 0.97
		if q.MinReceived < want-1e-9 || q.MinReceived > want+1e-9 {
			t.Errorf("MinReceived = %f, expected %f", q.MinReceived, want)
		}
	})

	t.Run("NoNativePrice", func(t *testing.T) {
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sampleResponse("0.05", "0", 50000))
		})

		if _, err := s.TradeQuote(context.Background(), sampleToken, 0.1, 3); err == nil {
			t.Error("Expected error when native price is zero")
		}
	})

	t.Run("ImpactCapped", func(t *testing.T) {
		// Tiny pool: the trade is bigger than the liquidity
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sampleResponse("10", "0.5", 5))
		})

		q, err := s.TradeQuote(context.Background(), sampleToken, 100, 3)
		if err != nil {
			t.Fatalf("TradeQuote failed: %v", err)
		}
		if q.PriceImpact != 100 {
			t.Errorf("PriceImpact = %f, expected cap at 100", q.PriceImpact)
		}
	})
}
