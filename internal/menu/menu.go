package menu

import "fmt"

// Main reply-keyboard button labels. Incoming text is matched against
// these before anything else.
const (
	BtnWallet    = "👛 Wallet Management"
	BtnMonitor   = "📊 Token Monitoring"
	BtnSnipe     = "🎯 Auto Sniper"
	BtnTrade     = "⚡ Quick Trade"
	BtnAnalytics = "📈 Analytics"
	BtnSettings  = "⚙️ Settings"
	BtnSecurity  = "🛡️ Security"
	BtnAdvanced  = "🔍 Advanced"
	BtnPortfolio = "📋 Portfolio"
	BtnQuick     = "🚀 Quick Actions"
	BtnMarket    = "📊 Market Data"
)

// Action is a single inline button: its callback ID and visible label
type Action struct {
	ID    string
	Label string
}

// Definition is a static menu screen. Header and Rows are fixed;
// counters are injected at render time.
type Definition struct {
	ID     string
	Header string
	Rows   [][]Action
}

// Summary carries the per-user counters shown in menu bodies
type Summary struct {
	Wallets       int
	DefaultWallet string
	Monitored     int
	Alerts        int
	ActiveSnipes  int
	Trades        int
	Slippage      int
	GasPrice      string
	Notifications bool
}

// ButtonMenus maps each main-keyboard label to the menu it opens
var ButtonMenus = map[string]string{
	BtnWallet:    "wallet",
	BtnMonitor:   "monitor",
	BtnSnipe:     "snipe",
	BtnTrade:     "trade",
	BtnAnalytics: "analytics",
	BtnSettings:  "settings",
	BtnSecurity:  "security",
	BtnAdvanced:  "advanced",
	BtnPortfolio: "portfolio",
	BtnQuick:     "quick",
	BtnMarket:    "market",
}

// MainLabels lists the reply-keyboard rows for the persistent keyboard
var MainLabels = [][]string{
	{BtnWallet, BtnMonitor},
	{BtnSnipe, BtnTrade},
	{BtnAnalytics, BtnSettings},
	{BtnSecurity, BtnAdvanced},
	{BtnPortfolio, BtnQuick},
	{BtnMarket},
}

var registry = map[string]Definition{
	"main": {
		ID:     "main",
		Header: "🤖 *Monad Sniper Bot*\n\nUse the keyboard below or pick an action:",
		Rows: [][]Action{
			{{ID: "wallet_open", Label: "👛 Wallets"}, {ID: "monitor_open", Label: "📊 Monitoring"}},
			{{ID: "snipe_open", Label: "🎯 Sniper"}, {ID: "trade_open", Label: "⚡ Trade"}},
			{{ID: "analytics_open", Label: "📈 Analytics"}, {ID: "settings_open", Label: "⚙️ Settings"}},
		},
	},
	"wallet": {
		ID:     "wallet",
		Header: "👛 *Wallet Management*",
		Rows: [][]Action{
			{{ID: "wallet_connect", Label: "🔗 Connect Wallet"}, {ID: "wallet_generate", Label: "✨ Generate New"}},
			{{ID: "wallet_list", Label: "📋 My Wallets"}, {ID: "wallet_balance", Label: "💰 Balance"}},
			{{ID: "wallet_default", Label: "⭐ Set Default"}, {ID: "wallet_remove", Label: "🗑 Remove"}},
			{{ID: "wallet_export", Label: "📤 Export Backup"}},
			{{ID: "wallet_back", Label: "⬅️ Back"}},
		},
	},
	"monitor": {
		ID:     "monitor",
		Header: "📊 *Token Monitoring*",
		Rows: [][]Action{
			{{ID: "monitor_add", Label: "➕ Add Token"}, {ID: "monitor_remove", Label: "➖ Remove Token"}},
			{{ID: "monitor_list", Label: "📋 Watch List"}, {ID: "monitor_info", Label: "🔍 Token Info"}},
			{{ID: "monitor_alert", Label: "🔔 Price Alert"}, {ID: "monitor_alerts", Label: "📋 My Alerts"}},
			{{ID: "monitor_back", Label: "⬅️ Back"}},
		},
	},
	"snipe": {
		ID:     "snipe",
		Header: "🎯 *Auto Sniper*",
		Rows: [][]Action{
			{{ID: "snipe_setup", Label: "⚙️ New Snipe"}, {ID: "snipe_quick", Label: "⚡ Quick Snipe"}},
			{{ID: "snipe_list", Label: "📋 Active Snipes"}, {ID: "snipe_cancel", Label: "❌ Cancel All"}},
			{{ID: "snipe_back", Label: "⬅️ Back"}},
		},
	},
	"trade": {
		ID:     "trade",
		Header: "⚡ *Quick Trade*",
		Rows: [][]Action{
			{{ID: "trade_buy", Label: "🟢 Buy"}, {ID: "trade_sell", Label: "🔴 Sell"}},
			{{ID: "trade_quote", Label: "💱 Get Quote"}, {ID: "trade_history", Label: "📜 History"}},
			{{ID: "trade_back", Label: "⬅️ Back"}},
		},
	},
	"analytics": {
		ID:     "analytics",
		Header: "📈 *Analytics*",
		Rows: [][]Action{
			{{ID: "analytics_portfolio", Label: "💼 Portfolio"}, {ID: "analytics_performance", Label: "📊 Performance"}},
			{{ID: "analytics_chart", Label: "📉 Price Chart"}, {ID: "analytics_history", Label: "📜 Trade Log"}},
			{{ID: "analytics_back", Label: "⬅️ Back"}},
		},
	},
	"settings": {
		ID:     "settings",
		Header: "⚙️ *Settings*",
		Rows: [][]Action{
			{{ID: "settings_slippage", Label: "📐 Slippage"}, {ID: "settings_gas", Label: "⛽ Gas Price"}},
			{{ID: "settings_stoploss", Label: "🛑 Stop Loss"}, {ID: "settings_takeprofit", Label: "🎯 Take Profit"}},
			{{ID: "settings_maxbuy", Label: "💵 Max Buy"}, {ID: "settings_notifications", Label: "🔔 Notifications"}},
			{{ID: "settings_reset", Label: "♻️ Reset Defaults"}},
			{{ID: "settings_back", Label: "⬅️ Back"}},
		},
	},
	"security": {
		ID:     "security",
		Header: "🛡️ *Security*",
		Rows: [][]Action{
			{{ID: "security_status", Label: "🔍 Status"}, {ID: "security_backup", Label: "💾 Backup"}},
			{{ID: "security_2fa", Label: "🔐 2FA"}, {ID: "security_logs", Label: "📋 Activity Log"}},
			{{ID: "security_scan", Label: "🔬 Wallet Scan"}, {ID: "security_tips", Label: "📚 Safety Tips"}},
			{{ID: "security_back", Label: "⬅️ Back"}},
		},
	},
	"advanced": {
		ID:     "advanced",
		Header: "🔍 *Advanced*",
		Rows: [][]Action{
			{{ID: "advanced_gas", Label: "⛽ Gas Tracker"}, {ID: "advanced_scanner", Label: "🔬 Token Scanner"}},
			{{ID: "advanced_autobuy", Label: "🤖 Auto Buy"}, {ID: "advanced_limits", Label: "📏 Trade Limits"}},
			{{ID: "advanced_back", Label: "⬅️ Back"}},
		},
	},
	"quick": {
		ID:     "quick",
		Header: "🚀 *Quick Actions*",
		Rows: [][]Action{
			{{ID: "trade_buy", Label: "🟢 Quick Buy"}, {ID: "trade_sell", Label: "🔴 Quick Sell"}},
			{{ID: "snipe_quick", Label: "⚡ Quick Snipe"}, {ID: "wallet_balance", Label: "💰 Balance"}},
			{{ID: "quick_back", Label: "⬅️ Back"}},
		},
	},
	"market": {
		ID:     "market",
		Header: "📊 *Market Data*",
		Rows: [][]Action{
			{{ID: "monitor_info", Label: "🔍 Token Lookup"}, {ID: "analytics_chart", Label: "📉 Price Chart"}},
			{{ID: "market_back", Label: "⬅️ Back"}},
		},
	},
	"portfolio": {
		ID:     "portfolio",
		Header: "📋 *Portfolio*",
		Rows: [][]Action{
			{{ID: "analytics_portfolio", Label: "💼 Holdings"}, {ID: "trade_history", Label: "📜 History"}},
			{{ID: "portfolio_back", Label: "⬅️ Back"}},
		},
	},
}

// Get returns a menu definition by ID
func Get(id string) (Definition, bool) {
	def, ok := registry[id]
	return def, ok
}

// IDs lists every registered menu
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// Render produces the Markdown body for a menu. Rendering is a pure
// function of the menu ID and the summary, so repeating a navigation
// yields the same screen.
func Render(id string, sum Summary) (string, [][]Action, bool) {
	def, ok := registry[id]
	if !ok {
		return "", nil, false
	}

	body := def.Header
	switch id {
	case "main":
		body += fmt.Sprintf("\n\n👛 Wallets: %d | 📊 Watching: %d\n🎯 Active snipes: %d | ⚡ Trades: %d",
			sum.Wallets, sum.Monitored, sum.ActiveSnipes, sum.Trades)
	case "wallet":
		defWallet := sum.DefaultWallet
		if defWallet == "" {
			defWallet = "none"
		}
		body += fmt.Sprintf("\n\nWallets: %d\nDefault: `%s`", sum.Wallets, defWallet)
	case "monitor":
		body += fmt.Sprintf("\n\nWatching %d tokens, %d alerts set", sum.Monitored, sum.Alerts)
	case "snipe":
		body += fmt.Sprintf("\n\nActive snipes: %d", sum.ActiveSnipes)
	case "trade":
		body += fmt.Sprintf("\n\nSlippage: %d%% | Gas: %s", sum.Slippage, sum.GasPrice)
	case "settings":
		notif := "off"
		if sum.Notifications {
			notif = "on"
		}
		body += fmt.Sprintf("\n\nSlippage: %d%%\nGas: %s\nNotifications: %s", sum.Slippage, sum.GasPrice, notif)
	}

	return body, def.Rows, true
}
