package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"monad-sniper-bot/internal/session"
	"monad-sniper-bot/validate"
)

const welcomeText = `🤖 *Welcome to Monad Sniper Bot!*

Your trading assistant on Monad:

👛 Manage wallets
📊 Monitor tokens and set price alerts
🎯 Snipe new tokens automatically
⚡ Execute quick trades

Pick an option from the keyboard below to get started.`

const helpText = `📚 *Commands*

/start - Welcome screen
/menu - Main menu
/buy <contract> <amount> - Instant buy
/sell <contract> <percentage> - Sell part of a holding
/snipe <contract> <amount> <trigger> - Arm a quick snipe
/monitor <contract> - Watch a token
/balance - Default wallet balance
/portfolio - Full portfolio
/help - This message

Everything else is available through the menu buttons.`

// handleCommand runs the slash commands. An armed prompt is resolved
// before commands are considered, so these only see fresh text.
func (d *Dispatcher) handleCommand(ctx context.Context, s *session.Session, msgText string) []Reply {
	fields := strings.Fields(msgText)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/start":
		return []Reply{
			{Text: welcomeText, MainKeyboard: true},
			d.menuReply(s, "main"),
		}

	case "/menu":
		return []Reply{d.menuReply(s, "main")}

	case "/help":
		return []Reply{text(helpText)}

	case "/buy":
		return d.quickBuy(ctx, s, args)

	case "/sell":
		return d.quickSell(ctx, s, args)

	case "/snipe":
		return d.quickSnipe(ctx, s, args)

	case "/monitor":
		return d.quickMonitor(ctx, s, args)

	case "/balance":
		return d.showBalance(ctx, s)

	case "/portfolio":
		return d.showPortfolio(ctx, s)
	}

	return []Reply{warn("Unknown command. Try /help.")}
}

// quickBuy executes an immediate buy. Quick trades are fire-and-forget
// and do not enter the trade history.
func (d *Dispatcher) quickBuy(ctx context.Context, s *session.Session, args []string) []Reply {
	if len(args) != 2 {
		return []Reply{text("❌ Usage: /buy <contract> <amount>")}
	}
	contract, amountStr := args[0], args[1]

	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	amount, ok := validate.Amount(amountStr)
	if !ok {
		return []Reply{errText("Invalid amount. Send a positive number like 0.1")}
	}
	if amount > s.Settings.MaxBuyAmount {
		return []Reply{errText(fmt.Sprintf("Amount exceeds your max buy limit of %g MON. Adjust it in ⚙️ Settings.", s.Settings.MaxBuyAmount))}
	}
	if _, errReply := tradingWallet(s); errReply.Text != "" {
		return []Reply{errReply}
	}

	quote, err := d.market.TradeQuote(ctx, contract, amount, s.Settings.Slippage)
	if err != nil {
		return []Reply{collabFail("quote", err)}
	}

	return []Reply{text(fmt.Sprintf(
		"✅ *Bought %s*\n\nAmount: %g MON\nTokens: %.4f\nPrice: $%.6f\nImpact: %.2f%%\nMin received: %.4f\nGas: %s",
		shortAddr(contract), amount, quote.TokensOut, quote.PriceUSD,
		quote.PriceImpact, quote.MinReceived, s.Settings.GasPrice))}
}

// quickSell sells a percentage of the default wallet's holding
func (d *Dispatcher) quickSell(ctx context.Context, s *session.Session, args []string) []Reply {
	if len(args) != 2 {
		return []Reply{text("❌ Usage: /sell <contract> <percentage>")}
	}
	contract := args[0]
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	pct, ok := validate.Percentage(args[1])
	if !ok {
		return []Reply{errText("Invalid percentage. Send a number between 0 and 100.")}
	}
	w, errReply := tradingWallet(s)
	if w == nil {
		return []Reply{errReply}
	}

	holding, err := d.chain.TokenBalance(ctx, contract, w.Address)
	if err != nil {
		return []Reply{collabFail("token balance", err)}
	}
	if holding.Amount <= 0 {
		return []Reply{errText("You don't hold this token in your default wallet.")}
	}

	price, err := d.market.TokenPrice(ctx, contract)
	if err != nil {
		return []Reply{collabFail("price lookup", err)}
	}

	tokens := holding.Amount * pct / 100
	return []Reply{text(fmt.Sprintf(
		"✅ *Sold %g%% of %s*\n\nTokens: %.4f\nPrice: $%.6f\nValue: $%.4f\nGas: %s",
		pct, shortAddr(contract), tokens, price, tokens*price, s.Settings.GasPrice))}
}

// quickSnipe arms an immediate snipe without saving a config
func (d *Dispatcher) quickSnipe(ctx context.Context, s *session.Session, args []string) []Reply {
	if len(args) != 3 {
		return []Reply{text("❌ Usage: /snipe <contract> <amount> <trigger>")}
	}
	contract := args[0]
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	amount, ok := validate.Amount(args[1])
	if !ok {
		return []Reply{errText("Invalid amount. Send a positive number like 0.1")}
	}
	trigger, ok := validate.Amount(args[2])
	if !ok {
		return []Reply{errText("Invalid trigger price. Send a positive number.")}
	}

	price, err := d.market.TokenPrice(ctx, contract)
	if err != nil {
		return []Reply{collabFail("price lookup", err)}
	}

	return []Reply{text(fmt.Sprintf(
		"🎯 *Quick snipe armed*\n\nToken: `%s`\nAmount: %g MON\nTrigger: $%g\nCurrent: $%.6f\n\nThis one-shot snipe fires as soon as the trigger hits.",
		contract, amount, trigger, price))}
}

func (d *Dispatcher) quickMonitor(ctx context.Context, s *session.Session, args []string) []Reply {
	if len(args) != 1 {
		return []Reply{text("❌ Usage: /monitor <contract>")}
	}
	return d.addMonitoredToken(ctx, s, args[0])
}

// addMonitoredToken is shared by /monitor and the menu flow
func (d *Dispatcher) addMonitoredToken(ctx context.Context, s *session.Session, contract string) []Reply {
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	if s.IsMonitoring(contract) {
		return []Reply{warn("You're already monitoring this token.")}
	}

	info, err := d.market.TokenInfo(ctx, contract)
	if err != nil {
		return []Reply{collabFail("token lookup", err)}
	}

	now := time.Now().Unix()
	s.MonitoredTokens = append(s.MonitoredTokens, session.MonitoredToken{
		Address:    contract,
		Name:       info.Name,
		Symbol:     info.Symbol,
		LastPrice:  info.PriceUSD,
		AddedAt:    now,
		LastUpdate: now,
	})

	return []Reply{text(fmt.Sprintf(
		"✅ Now monitoring *%s* (%s)\n\nPrice: $%.6f\nLiquidity: $%.0f\n24h volume: $%.0f",
		info.Name, info.Symbol, info.PriceUSD, info.Liquidity, info.Volume24h))}
}

func (d *Dispatcher) showBalance(ctx context.Context, s *session.Session) []Reply {
	w := s.DefaultWallet()
	if w == nil {
		return []Reply{errText("No default wallet set. Add one in 👛 Wallet Management first.")}
	}

	mon, err := d.chain.Balance(ctx, w.Address)
	if err != nil {
		return []Reply{collabFail("balance", err)}
	}

	return []Reply{text(fmt.Sprintf("💰 *%s*\n`%s`\n\nBalance: *%.4f MON*", w.Name, w.Address, mon))}
}

func (d *Dispatcher) showPortfolio(ctx context.Context, s *session.Session) []Reply {
	w := s.DefaultWallet()
	if w == nil {
		return []Reply{errText("No default wallet set. Add one in 👛 Wallet Management first.")}
	}

	tokens := make([]string, 0, len(s.MonitoredTokens))
	for _, m := range s.MonitoredTokens {
		tokens = append(tokens, m.Address)
	}

	p, err := d.chain.Portfolio(ctx, w.Address, tokens)
	if err != nil {
		return []Reply{collabFail("portfolio", err)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Portfolio* — %s\n\n💰 %.4f MON\n", w.Name, p.MON)
	if len(p.Holdings) == 0 {
		b.WriteString("\nNo token holdings among your monitored tokens.")
	} else {
		for _, h := range p.Holdings {
			sym := h.Symbol
			if sym == "" {
				sym = shortAddr(h.Token)
			}
			fmt.Fprintf(&b, "• %s: %.4f\n", sym, h.Amount)
		}
	}

	return []Reply{text(b.String())}
}
