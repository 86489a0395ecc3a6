package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"monad-sniper-bot/chain"
	"monad-sniper-bot/config"
	"monad-sniper-bot/crypto"
	"monad-sniper-bot/internal/bot"
	"monad-sniper-bot/internal/session"
	"monad-sniper-bot/market"
	"monad-sniper-bot/server"
	"monad-sniper-bot/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// A bad encryption key makes every stored wallet unreadable, so
	// this is a startup failure, not a degraded mode.
	enc, err := crypto.New(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("Invalid ENCRYPTION_KEY: %v", err)
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = market.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, price caching disabled: %v", err)
			rdb = nil
		} else {
			log.Println("✅ Redis price cache connected")
		}
	}

	marketSvc := market.New(rdb)
	chainClient := chain.New(cfg.MonadRPCURL)
	store := session.NewStore(db)
	dispatcher := bot.NewDispatcher(store, marketSvc, chainClient, enc, db)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Bot started: @%s", api.Self.UserName)

	srv := server.New(api, dispatcher)

	ctx := context.Background()
	go priceRefreshLoop(ctx, store, marketSvc)

	if cfg.WebhookURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.WebhookURL)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := api.Request(wh); err != nil {
			log.Fatalf("Failed to set webhook: %v", err)
		}
		log.Printf("🌐 Webhook set, listening on %s", cfg.ListenAddr)
		log.Fatal(http.ListenAndServe(cfg.ListenAddr, srv))
	}

	srv.RunPolling(ctx)
}

// priceRefreshLoop keeps the cached price on every monitored token
// fresh. It only updates state; alert delivery rides on the next
// interaction.
func priceRefreshLoop(ctx context.Context, store *session.Store, md *market.Service) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, userID := range store.UserIDs() {
			snap := store.Peek(userID)
			if len(snap.MonitoredTokens) == 0 {
				continue
			}

			prices := make(map[string]float64, len(snap.MonitoredTokens))
			for _, m := range snap.MonitoredTokens {
				price, err := md.TokenPrice(ctx, m.Address)
				if err != nil {
					log.Printf("⚠️ Price refresh failed for %s: %v", m.Address, err)
					continue
				}
				prices[m.Address] = price
			}
			if len(prices) == 0 {
				continue
			}

			err := store.WithSession(userID, func(s *session.Session) error {
				now := time.Now().Unix()
				for i := range s.MonitoredTokens {
					if p, ok := prices[s.MonitoredTokens[i].Address]; ok {
						s.MonitoredTokens[i].LastPrice = p
						s.MonitoredTokens[i].LastUpdate = now
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("⚠️ Price refresh for %d: %v", userID, err)
			}
		}
	}
}
