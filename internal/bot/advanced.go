package bot

import (
	"context"
	"fmt"

	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleAdvancedCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "advanced_gas":
		return []Reply{text(fmt.Sprintf(
			"⛽ *Gas tracker*\n\n🐢 Slow: ~50 gwei\n🚶 Standard: ~52 gwei\n🚀 Fast: ~55 gwei\n\nYour tier: *%s*",
			s.Settings.GasPrice))}

	case "advanced_scanner":
		s.SetPending(session.PendingTokenInfo, "")
		return []Reply{text("🔬 Send a token contract address for a full scan:")}

	case "advanced_autobuy":
		s.Settings.AutoBuy = !s.Settings.AutoBuy
		if s.Settings.AutoBuy {
			return []Reply{text(fmt.Sprintf("🤖 Auto buy *enabled* — monitored tokens matching your filters buy up to %g MON automatically.", s.Settings.MaxBuyAmount))}
		}
		return []Reply{text("🤖 Auto buy *disabled*")}

	case "advanced_limits":
		return []Reply{text(fmt.Sprintf(
			"📏 *Trade limits*\n\nMax buy: %g MON\nStop loss: %g%%\nTake profit: %g%%\nSlippage: %d%%\n\nAdjust these in ⚙️ Settings.",
			s.Settings.MaxBuyAmount, s.Settings.StopLoss, s.Settings.TakeProfit, s.Settings.Slippage))}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}
