package bot

import (
	"context"
	"fmt"
	"strings"

	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleAnalyticsCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "analytics_portfolio":
		return d.showPortfolio(ctx, s)

	case "analytics_performance":
		return []Reply{text(formatPerformance(s))}

	case "analytics_chart":
		s.SetPending(session.PendingTokenInfo, "chart")
		return []Reply{text("📉 Send the token contract address to chart:")}

	case "analytics_history":
		return d.showTradeLog(s)
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}

// formatPerformance summarizes the in-session trade history
func formatPerformance(s *session.Session) string {
	if len(s.TradeHistory) == 0 {
		return "📊 No trades yet, nothing to analyze."
	}

	wins, total := 0, len(s.TradeHistory)
	var profit, volume float64
	for _, t := range s.TradeHistory {
		if t.Success && t.Profit >= 0 {
			wins++
		}
		profit += t.Profit
		volume += t.Amount
	}
	winrate := float64(wins) / float64(total) * 100

	var b strings.Builder
	b.WriteString("📊 *Performance*\n\n")
	fmt.Fprintf(&b, "Trades: %d\nVolume: %.4f MON\nP/L: %+.4f MON\n\n", total, volume, profit)
	fmt.Fprintf(&b, "Win rate: %.0f%%\n%s\n", winrate, progressBar(winrate, 100, 10))
	return b.String()
}

// showTradeLog reads the persistent trade log, which survives restarts
// unlike the in-session history.
func (d *Dispatcher) showTradeLog(s *session.Session) []Reply {
	if d.db == nil {
		return []Reply{text(formatTradeHistory(s))}
	}

	records, err := d.db.RecentTrades(s.UserID, 10)
	if err != nil {
		return []Reply{collabFail("trade log", err)}
	}
	if len(records) == 0 {
		return []Reply{text("📜 The trade log is empty.")}
	}

	var b strings.Builder
	b.WriteString("📜 *Trade log*\n")
	for _, r := range records {
		icon := "🟢"
		if r.TradeType == "sell" {
			icon = "🔴"
		}
		fmt.Fprintf(&b, "\n%s %s %s — %g MON @ $%.6f\n", icon, strings.ToUpper(r.TradeType), shortAddr(r.Token), r.Amount, r.Price)
	}
	return []Reply{text(b.String())}
}
