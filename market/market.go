package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// DexScreener token endpoint for the Monad chain
const defaultBaseURL = "https://api.dexscreener.com/latest/dex/tokens"

const priceCacheTTL = 30 * time.Second

// TokenInfo represents token data from DexScreener
type TokenInfo struct {
	Address     string
	Name        string
	Symbol      string
	PriceUSD    float64
	PriceNative float64
	Change24h   float64
	Change1h    float64
	Change5m    float64
	Liquidity   float64
	Volume24h   float64
	Buys1h      int
	Sells1h     int
	PairAddress string
	DexID       string
}

// Quote is an estimate for a swap, before it is submitted
type Quote struct {
	Token       string
	AmountIn    float64
	TokensOut   float64
	PriceUSD    float64
	PriceImpact float64
	MinReceived float64
}

type Service struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *redis.Client // nil when Redis is not configured
	maxRetries int
}

// New creates a market data client. rdb may be nil; prices are then
// fetched fresh on every call.
func New(rdb *redis.Client) *Service {
	return &Service{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10), // DexScreener allows ~300 req/min
		cache:      rdb,
		maxRetries: 3,
	}
}

// NewRedisClient creates a Redis client with connection pooling for the price cache
func NewRedisClient(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

type dexScreenerResponse struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pairs         []dexPair `json:"pairs"`
}

type dexPair struct {
	ChainID     string      `json:"chainId"`
	DexID       string      `json:"dexId"`
	PairAddress string      `json:"pairAddress"`
	BaseToken   baseToken   `json:"baseToken"`
	PriceNative string      `json:"priceNative"`
	PriceUSD    string      `json:"priceUsd"`
	Txns        txns        `json:"txns"`
	Volume      volume      `json:"volume"`
	PriceChange priceChange `json:"priceChange"`
	Liquidity   liquidity   `json:"liquidity"`
}

type baseToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type txns struct {
	M5 txnDetail `json:"m5"`
	H1 txnDetail `json:"h1"`
}

type txnDetail struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

type volume struct {
	H24 float64 `json:"h24"`
}

type priceChange struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H24 float64 `json:"h24"`
}

type liquidity struct {
	USD float64 `json:"usd"`
}

// doRequest performs an HTTP request with retries and context cancellation
func (s *Service) doRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			backoff := time.Duration(1<<attempt) * time.Second
			jitter := time.Duration(rand.Intn(1000)) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := s.httpClient.Do(req.WithContext(ctx))
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("market API error: %d", resp.StatusCode)
			continue
		}

		return nil, fmt.Errorf("market API error: %d - %s", resp.StatusCode, string(body))
	}

	return nil, fmt.Errorf("max retries exceeded: %v", lastErr)
}

// TokenInfo fetches token data from DexScreener
func (s *Service) TokenInfo(ctx context.Context, tokenAddress string) (*TokenInfo, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, tokenAddress)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	body, err := s.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	var dexResp dexScreenerResponse
	if err := json.Unmarshal(body, &dexResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(dexResp.Pairs) == 0 {
		return nil, fmt.Errorf("token not found on DexScreener")
	}

	// Use the first (most liquid) pair
	pair := dexResp.Pairs[0]

	priceUSD, _ := strconv.ParseFloat(pair.PriceUSD, 64)
	priceNative, _ := strconv.ParseFloat(pair.PriceNative, 64)

	return &TokenInfo{
		Address:     pair.BaseToken.Address,
		Name:        pair.BaseToken.Name,
		Symbol:      pair.BaseToken.Symbol,
		PriceUSD:    priceUSD,
		PriceNative: priceNative,
		Change24h:   pair.PriceChange.H24,
		Change1h:    pair.PriceChange.H1,
		Change5m:    pair.PriceChange.M5,
		Liquidity:   pair.Liquidity.USD,
		Volume24h:   pair.Volume.H24,
		Buys1h:      pair.Txns.H1.Buys,
		Sells1h:     pair.Txns.H1.Sells,
		PairAddress: pair.PairAddress,
		DexID:       pair.DexID,
	}, nil
}

// TokenPrice returns the USD price for a token, served from the Redis
// cache when a recent value is available.
func (s *Service) TokenPrice(ctx context.Context, tokenAddress string) (float64, error) {
	cacheKey := "price:" + tokenAddress

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			if price, perr := strconv.ParseFloat(cached, 64); perr == nil {
				return price, nil
			}
		}
	}

	info, err := s.TokenInfo(ctx, tokenAddress)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		// Cache write failures are not worth failing the lookup over
		s.cache.Set(ctx, cacheKey, strconv.FormatFloat(info.PriceUSD, 'f', -1, 64), priceCacheTTL)
	}

	return info.PriceUSD, nil
}

// TradeQuote estimates the outcome of buying amountIn MON worth of a token.
// Price impact is approximated against the pair's USD liquidity.
func (s *Service) TradeQuote(ctx context.Context, tokenAddress string, amountIn float64, slippagePct int) (*Quote, error) {
	info, err := s.TokenInfo(ctx, tokenAddress)
	if err != nil {
		return nil, err
	}

	if info.PriceNative <= 0 {
		return nil, fmt.Errorf("no native price available for %s", tokenAddress)
	}

	tokensOut := amountIn / info.PriceNative

	impact := 0.0
	if info.Liquidity > 0 {
		impact = (amountIn * info.PriceUSD / info.PriceNative) / info.Liquidity * 100
		if impact > 100 {
			impact = 100
		}
	}

	minReceived := tokensOut * (1 - float64(slippagePct)/100)

	return &Quote{
		Token:       tokenAddress,
		AmountIn:    amountIn,
		TokensOut:   tokensOut,
		PriceUSD:    info.PriceUSD,
		PriceImpact: impact,
		MinReceived: minReceived,
	}, nil
}
