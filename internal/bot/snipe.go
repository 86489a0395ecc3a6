package bot

import (
	"context"
	"fmt"
	"strings"

	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleSnipeCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "snipe_setup":
		s.SetPending(session.PendingSnipeSetup, "")
		return []Reply{text("⚙️ Send: `<contract> <amount> <trigger price>`\n\nExample: `0xabc... 0.1 0.05`\n\nThe snipe buys when the price hits the trigger.")}

	case "snipe_quick":
		s.SetPending(session.PendingQuickSnipe, "")
		return []Reply{text("⚡ Send: `<contract> <amount>`\n\nQuick snipes fire immediately and are not saved.")}

	case "snipe_list":
		return []Reply{text(formatSnipes(s))}

	case "snipe_cancel":
		n := 0
		for i := range s.SnipeConfigs {
			if s.SnipeConfigs[i].Active {
				s.SnipeConfigs[i].Active = false
				n++
			}
		}
		if n == 0 {
			return []Reply{warn("No active snipes to cancel.")}
		}
		return []Reply{text(fmt.Sprintf("❌ Cancelled %d active snipe(s)", n))}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}

func formatSnipes(s *session.Session) string {
	if len(s.SnipeConfigs) == 0 {
		return "🎯 No snipes configured.\n\nUse ⚙️ New Snipe to set one up."
	}

	var b strings.Builder
	b.WriteString("🎯 *Snipe configs*\n")
	for _, sc := range s.SnipeConfigs {
		status := "⏸ inactive"
		if sc.Active {
			status = "🟢 active"
		}
		fmt.Fprintf(&b, "\n• %s — %g MON @ $%g (%s)\n", shortAddr(sc.Token), sc.Amount, sc.TriggerPrice, status)
	}
	return b.String()
}
