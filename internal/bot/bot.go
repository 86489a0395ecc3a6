package bot

import (
	"context"
	"log"
	"strings"

	"monad-sniper-bot/chain"
	"monad-sniper-bot/crypto"
	"monad-sniper-bot/internal/menu"
	"monad-sniper-bot/internal/session"
	"monad-sniper-bot/market"
	"monad-sniper-bot/storage"
)

// MarketData is the market price collaborator
type MarketData interface {
	TokenPrice(ctx context.Context, token string) (float64, error)
	TokenInfo(ctx context.Context, token string) (*market.TokenInfo, error)
	TradeQuote(ctx context.Context, token string, amountIn float64, slippagePct int) (*market.Quote, error)
}

// ChainReader is the on-chain balance collaborator
type ChainReader interface {
	Balance(ctx context.Context, wallet string) (float64, error)
	TokenBalance(ctx context.Context, token, wallet string) (*chain.TokenHolding, error)
	Portfolio(ctx context.Context, wallet string, tokens []string) (*chain.Portfolio, error)
}

// Event is one normalized incoming update: either free text or a
// callback press, never both.
type Event struct {
	UserID   int64
	Text     string
	Callback string
}

// Reply is one outgoing message. Menu names a registry screen to
// attach as inline keyboard; Keyboard attaches ad-hoc inline rows;
// MainKeyboard re-sends the persistent reply keyboard.
type Reply struct {
	Text         string
	Menu         string
	Keyboard     [][]menu.Action
	MainKeyboard bool
}

// Dispatcher routes updates to feature handlers. All session access
// happens inside the store's per-user critical section.
type Dispatcher struct {
	store  *session.Store
	market MarketData
	chain  ChainReader
	enc    *crypto.Encryptor
	db     *storage.DB
}

func NewDispatcher(store *session.Store, md MarketData, cr ChainReader, enc *crypto.Encryptor, db *storage.DB) *Dispatcher {
	return &Dispatcher{
		store:  store,
		market: md,
		chain:  cr,
		enc:    enc,
		db:     db,
	}
}

func text(s string) Reply    { return Reply{Text: s} }
func errText(s string) Reply { return Reply{Text: "❌ " + s} }
func warn(s string) Reply    { return Reply{Text: "⚠️ " + s} }

// collabFail logs a collaborator failure and returns the user-facing
// apology. The underlying error never reaches the chat.
func collabFail(op string, err error) Reply {
	log.Printf("❌ %s failed: %v", op, err)
	return warn("Service temporarily unavailable. Please try again in a moment.")
}

// Dispatch processes one event and returns the replies to send. A
// panic in a handler is contained here: the user gets an apology and
// the main menu instead of silence.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (replies []Reply) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic handling update for %d: %v", ev.UserID, r)
			replies = d.failureFallback(ev.UserID)
		}
	}()

	err := d.store.WithSession(ev.UserID, func(s *session.Session) error {
		if ev.Callback != "" {
			replies = d.handleCallback(ctx, s, ev.Callback)
			return nil
		}

		msgText := strings.TrimSpace(ev.Text)

		// Text routing order: keyboard labels, then an armed prompt,
		// then slash commands. Anything else is ignored so stray
		// chatter stays quiet.
		if menuID, ok := menu.ButtonMenus[msgText]; ok {
			replies = []Reply{d.menuReply(s, menuID)}
			return nil
		}

		if s.Pending != session.PendingNone {
			replies = d.resolvePending(ctx, s, msgText)
			return nil
		}

		if strings.HasPrefix(msgText, "/") {
			replies = d.handleCommand(ctx, s, msgText)
			return nil
		}

		return nil
	})
	if err != nil {
		log.Printf("❌ Session error for %d: %v", ev.UserID, err)
		replies = d.failureFallback(ev.UserID)
	}

	return replies
}

// failureFallback apologizes and restores the main menu so a failed
// update never strands the user without navigation.
func (d *Dispatcher) failureFallback(userID int64) []Reply {
	return []Reply{
		warn("Something went wrong. Returning to the main menu."),
		{Menu: "main", Text: d.renderMenu(userID, "main")},
	}
}

// summarize builds the menu counters from a session
func summarize(s *session.Session) menu.Summary {
	active := 0
	for _, sc := range s.SnipeConfigs {
		if sc.Active {
			active++
		}
	}
	defWallet := ""
	if w := s.DefaultWallet(); w != nil {
		defWallet = w.Address
	}
	return menu.Summary{
		Wallets:       len(s.Wallets),
		DefaultWallet: defWallet,
		Monitored:     len(s.MonitoredTokens),
		Alerts:        len(s.PriceAlerts),
		ActiveSnipes:  active,
		Trades:        len(s.TradeHistory),
		Slippage:      s.Settings.Slippage,
		GasPrice:      s.Settings.GasPrice,
		Notifications: s.Settings.Notifications,
	}
}

// menuReply renders a registry menu against the live session
func (d *Dispatcher) menuReply(s *session.Session, id string) Reply {
	body, _, ok := menu.Render(id, summarize(s))
	if !ok {
		return warn("Unknown menu. Returning to the main menu.")
	}
	return Reply{Text: body, Menu: id}
}

// renderMenu is menuReply for contexts outside the session closure
func (d *Dispatcher) renderMenu(userID int64, id string) string {
	snap := d.store.Peek(userID)
	body, _, _ := menu.Render(id, summarize(&snap))
	return body
}

// handleCallback routes an inline button press. Callback routing never
// consults the pending prompt: a stale button press cannot hijack a
// free-text answer.
func (d *Dispatcher) handleCallback(ctx context.Context, s *session.Session, data string) []Reply {
	if strings.HasSuffix(data, "_back") {
		// Backing out to the root menu also abandons any armed prompt
		s.ClearPending()
		return []Reply{d.menuReply(s, "main")}
	}
	if strings.HasSuffix(data, "_open") {
		return []Reply{d.menuReply(s, strings.TrimSuffix(data, "_open"))}
	}

	feature, _, ok := strings.Cut(data, "_")
	if !ok {
		log.Printf("⚠️ Malformed callback %q from %d", data, s.UserID)
		return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
	}

	switch feature {
	case "wallet":
		return d.handleWalletCallback(ctx, s, data)
	case "monitor":
		return d.handleMonitorCallback(ctx, s, data)
	case "snipe":
		return d.handleSnipeCallback(ctx, s, data)
	case "trade":
		return d.handleTradeCallback(ctx, s, data)
	case "settings":
		return d.handleSettingsCallback(ctx, s, data)
	case "analytics":
		return d.handleAnalyticsCallback(ctx, s, data)
	case "security":
		return d.handleSecurityCallback(ctx, s, data)
	case "advanced":
		return d.handleAdvancedCallback(ctx, s, data)
	}

	log.Printf("⚠️ Unknown callback %q from %d", data, s.UserID)
	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}
