package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"monad-sniper-bot/internal/session"
)

const securityTips = `📚 *Safety tips*

• Never share your seed phrase or private key in any chat
• Delete messages containing keys after importing
• Keep most funds in a cold wallet, trade from a hot one
• Triple-check contract addresses before buying
• Low liquidity means you may not be able to sell
• If a token looks too good to be true, it is`

func (d *Dispatcher) handleSecurityCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "security_status":
		return []Reply{text(formatSecurityStatus(s))}

	case "security_backup":
		return d.exportWallets(s)

	case "security_2fa":
		return []Reply{text("🔐 *Two-factor authentication*\n\nTelegram login already gates access to this bot. Link a hardware key to your Telegram account for the strongest protection.")}

	case "security_logs":
		return []Reply{text(formatActivityLog(s))}

	case "security_scan":
		return []Reply{text(formatWalletScan(s))}

	case "security_tips":
		return []Reply{text(securityTips)}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}

// formatActivityLog summarizes recent session activity
func formatActivityLog(s *session.Session) string {
	var b strings.Builder
	b.WriteString("📋 *Activity log*\n\n")
	fmt.Fprintf(&b, "Session created: %s\n", time.Unix(s.CreatedAt, 0).UTC().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Trades this session: %d\n", len(s.TradeHistory))
	fmt.Fprintf(&b, "Snipes configured: %d\n", len(s.SnipeConfigs))
	fmt.Fprintf(&b, "Alerts set: %d\n", len(s.PriceAlerts))
	return b.String()
}

// formatWalletScan reports per-wallet key hygiene
func formatWalletScan(s *session.Session) string {
	if len(s.Wallets) == 0 {
		return "🔬 No wallets to scan."
	}

	var b strings.Builder
	b.WriteString("🔬 *Wallet scan*\n")
	for _, w := range s.Wallets {
		state := "👁 watch-only, no key stored"
		if w.EncryptedSecret != "" {
			state = "🔒 key encrypted at rest"
		}
		fmt.Fprintf(&b, "\n*%s* `%s`\n%s\n", w.Name, shortAddr(w.Address), state)
	}
	return b.String()
}

func formatSecurityStatus(s *session.Session) string {
	encrypted := 0
	for _, w := range s.Wallets {
		if w.EncryptedSecret != "" {
			encrypted++
		}
	}

	notif := "🔕 off"
	if s.Settings.Notifications {
		notif = "🔔 on"
	}

	var b strings.Builder
	b.WriteString("🛡️ *Security status*\n\n")
	fmt.Fprintf(&b, "Wallets: %d (%d with encrypted keys)\n", len(s.Wallets), encrypted)
	fmt.Fprintf(&b, "Key storage: AES-256-GCM at rest\n")
	fmt.Fprintf(&b, "Notifications: %s\n", notif)
	fmt.Fprintf(&b, "Max buy cap: %g MON\n", s.Settings.MaxBuyAmount)
	return b.String()
}
