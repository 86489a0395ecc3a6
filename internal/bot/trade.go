package bot

import (
	"context"
	"fmt"
	"strings"

	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleTradeCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "trade_buy":
		s.SetPending(session.PendingBuyTarget, "")
		return []Reply{text("🟢 Send: `<contract> <amount>`\n\nExample: `0xabc... 0.1`")}

	case "trade_sell":
		s.SetPending(session.PendingSellTarget, "")
		return []Reply{text("🔴 Send: `<contract> <amount>`\n\nExample: `0xabc... 0.1`")}

	case "trade_quote":
		s.SetPending(session.PendingBuyTarget, "quote")
		return []Reply{text("💱 Send: `<contract> <amount>` to preview the trade without executing:")}

	case "trade_history":
		return []Reply{text(formatTradeHistory(s))}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}

func formatTradeHistory(s *session.Session) string {
	if len(s.TradeHistory) == 0 {
		return "📜 No trades yet.\n\nUse 🟢 Buy or 🔴 Sell to make your first."
	}

	var b strings.Builder
	b.WriteString("📜 *Trade history*\n")

	// Newest first, capped at 10
	start := len(s.TradeHistory) - 10
	if start < 0 {
		start = 0
	}
	for i := len(s.TradeHistory) - 1; i >= start; i-- {
		t := s.TradeHistory[i]
		icon := "🟢"
		if t.Type == "sell" {
			icon = "🔴"
		}
		status := "✅"
		if !t.Success {
			status = "❌"
		}
		fmt.Fprintf(&b, "\n%s %s %s — %g MON @ $%.6f %s\n", icon, strings.ToUpper(t.Type), shortAddr(t.Token), t.Amount, t.Price, status)
	}
	return b.String()
}
