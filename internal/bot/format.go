package bot

import (
	"fmt"
	"strings"

	"monad-sniper-bot/market"
)

// shortAddr abbreviates a 0x address for display
func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// progressBar renders value/max as a fixed-width text bar
func progressBar(value, max float64, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := int(value / max * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func changeIcon(pct float64) string {
	if pct >= 0 {
		return "📈"
	}
	return "📉"
}

func formatTokenInfo(info *market.TokenInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 *%s* (%s)\n`%s`\n\n", info.Name, info.Symbol, info.Address)
	fmt.Fprintf(&b, "💵 Price: $%.6f\n", info.PriceUSD)
	fmt.Fprintf(&b, "%s 24h: %+.2f%%  |  1h: %+.2f%%\n", changeIcon(info.Change24h), info.Change24h, info.Change1h)
	fmt.Fprintf(&b, "💧 Liquidity: $%.0f\n", info.Liquidity)
	fmt.Fprintf(&b, "📊 24h volume: $%.0f\n", info.Volume24h)
	fmt.Fprintf(&b, "🔄 1h txns: %d buys / %d sells\n", info.Buys1h, info.Sells1h)
	fmt.Fprintf(&b, "🏦 DEX: %s", info.DexID)
	return b.String()
}

// priceChart renders the short-term price changes as a text chart
func priceChart(info *market.TokenInfo) string {
	rows := []struct {
		label string
		pct   float64
	}{
		{"5m ", info.Change5m},
		{"1h ", info.Change1h},
		{"24h", info.Change24h},
	}

	// Scale bars against the biggest absolute move
	max := 1.0
	for _, r := range rows {
		abs := r.pct
		if abs < 0 {
			abs = -abs
		}
		if abs > max {
			max = abs
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📉 *%s* (%s) — $%.6f\n\n", info.Name, info.Symbol, info.PriceUSD)
	for _, r := range rows {
		abs := r.pct
		if abs < 0 {
			abs = -abs
		}
		fmt.Fprintf(&b, "`%s %s %+.2f%%`\n", r.label, progressBar(abs, max, 12), r.pct)
	}
	fmt.Fprintf(&b, "\n💧 Liquidity: $%.0f | 📊 Volume: $%.0f", info.Liquidity, info.Volume24h)
	return b.String()
}
