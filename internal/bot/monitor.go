package bot

import (
	"context"
	"fmt"
	"strings"

	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleMonitorCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "monitor_add":
		s.SetPending(session.PendingMonitorAddress, "")
		return []Reply{text("➕ Send the token contract address to monitor:")}

	case "monitor_remove":
		if len(s.MonitoredTokens) == 0 {
			return []Reply{errText("Your watch list is empty.")}
		}
		s.SetPending(session.PendingMonitorRemoval, "")
		var b strings.Builder
		b.WriteString("🗑️ *Remove token from monitoring*\n\n")
		for i, m := range s.MonitoredTokens {
			fmt.Fprintf(&b, "%d. %s - `%s`\n", i+1, tokenLabel(m), shortAddr(m.Address))
		}
		b.WriteString("\nReply with the number of the token to remove:")
		return []Reply{text(b.String())}

	case "monitor_list":
		return []Reply{text(formatWatchList(s))}

	case "monitor_info":
		s.SetPending(session.PendingTokenInfo, "")
		return []Reply{text("🔍 Send the token contract address to look up:")}

	case "monitor_alert":
		s.SetPending(session.PendingPriceAlert, "")
		return []Reply{text("🔔 Send: `<contract> <above|below> <price>`\n\nExample: `0xabc... above 0.5`")}

	case "monitor_alerts":
		return []Reply{text(formatAlerts(s))}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}

// tokenLabel is the display name for a watched token, falling back to
// the symbol and finally the shortened address.
func tokenLabel(m session.MonitoredToken) string {
	if m.Name != "" {
		return m.Name
	}
	if m.Symbol != "" {
		return m.Symbol
	}
	return shortAddr(m.Address)
}

func formatWatchList(s *session.Session) string {
	if len(s.MonitoredTokens) == 0 {
		return "📊 Your watch list is empty.\n\nUse ➕ Add Token or /monitor <contract> to start."
	}

	var b strings.Builder
	b.WriteString("📊 *Watch list*\n")
	for _, m := range s.MonitoredTokens {
		sym := m.Symbol
		if sym == "" {
			sym = shortAddr(m.Address)
		}
		fmt.Fprintf(&b, "\n• *%s* — $%.6f\n`%s`\n", sym, m.LastPrice, m.Address)
	}
	return b.String()
}

func formatAlerts(s *session.Session) string {
	if len(s.PriceAlerts) == 0 {
		return "🔔 No price alerts set.\n\nUse 🔔 Price Alert to add one."
	}

	var b strings.Builder
	b.WriteString("🔔 *Price alerts*\n")
	for _, a := range s.PriceAlerts {
		fmt.Fprintf(&b, "\n• %s %s $%g\n", shortAddr(a.Token), a.Condition, a.Price)
	}
	return b.String()
}
