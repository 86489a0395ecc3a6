package bot

import (
	"context"

	"monad-sniper-bot/internal/menu"
	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleSettingsCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch data {
	case "settings_slippage":
		s.SetPending(session.PendingSettingValue, "slippage")
		return []Reply{text("📐 Send your slippage tolerance as a whole number between 1 and 20:")}

	case "settings_gas":
		s.SetPending(session.PendingSettingValue, "gasprice")
		return []Reply{text("⛽ Send your gas tier: `slow`, `standard` or `fast`:")}

	case "settings_stoploss":
		s.SetPending(session.PendingSettingValue, "stoploss")
		return []Reply{text("🛑 Send your stop loss percentage (e.g. `5`):")}

	case "settings_takeprofit":
		s.SetPending(session.PendingSettingValue, "takeprofit")
		return []Reply{text("🎯 Send your take profit percentage (e.g. `20`):")}

	case "settings_maxbuy":
		s.SetPending(session.PendingSettingValue, "maxbuy")
		return []Reply{text("💵 Send your maximum buy amount in MON (e.g. `0.5`):")}

	case "settings_notifications":
		return []Reply{{
			Text: "🔔 Price alert notifications:",
			Keyboard: [][]menu.Action{{
				{ID: "settings_notify_on", Label: "🔔 On"},
				{ID: "settings_notify_off", Label: "🔕 Off"},
			}},
		}}

	case "settings_notify_on":
		s.Settings.Notifications = true
		return []Reply{text("🔔 Notifications enabled")}

	case "settings_notify_off":
		s.Settings.Notifications = false
		return []Reply{text("🔕 Notifications disabled")}

	case "settings_reset":
		return []Reply{{
			Text: "♻️ Reset all settings to defaults?",
			Keyboard: [][]menu.Action{{
				{ID: "settings_reset_confirm", Label: "✅ Reset"},
				{ID: "settings_reset_cancel", Label: "❌ Keep"},
			}},
		}}

	case "settings_reset_confirm":
		s.Settings = session.DefaultSettings()
		return []Reply{text("♻️ Settings restored to defaults"), d.menuReply(s, "settings")}

	case "settings_reset_cancel":
		return []Reply{text("👍 Settings unchanged"), d.menuReply(s, "settings")}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}
