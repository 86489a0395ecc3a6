package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"monad-sniper-bot/internal/session"
	"monad-sniper-bot/storage"
	"monad-sniper-bot/validate"
)

// resolvePending answers an armed prompt with the user's text. The
// prompt is consumed up front: a bad answer does not leave the prompt
// armed, the user restarts the flow from the menu.
func (d *Dispatcher) resolvePending(ctx context.Context, s *session.Session, msgText string) []Reply {
	pending, target := s.TakePending()

	switch pending {
	case session.PendingMonitorAddress:
		return d.addMonitoredToken(ctx, s, msgText)

	case session.PendingMonitorRemoval:
		n, err := strconv.Atoi(msgText)
		if err != nil {
			return []Reply{errText("Invalid token number. Please try again.")}
		}
		removed, ok := s.RemoveMonitoredAt(n - 1)
		if !ok {
			return []Reply{errText("Invalid token number. Please try again.")}
		}
		return []Reply{text(fmt.Sprintf("✅ Removed token: %s (`%s`)", tokenLabel(removed), shortAddr(removed.Address)))}

	case session.PendingTokenInfo:
		return d.resolveTokenInfo(ctx, s, msgText, target)

	case session.PendingPriceAlert:
		return d.resolvePriceAlert(s, msgText)

	case session.PendingSnipeSetup:
		return d.resolveSnipeSetup(s, msgText)

	case session.PendingQuickSnipe:
		fields := strings.Fields(msgText)
		if len(fields) != 2 {
			return []Reply{errText("Send: `<contract> <amount>`")}
		}
		return d.quickSnipeFromMenu(ctx, s, fields[0], fields[1])

	case session.PendingBuyTarget:
		return d.resolveTrade(ctx, s, "buy", msgText, target)

	case session.PendingSellTarget:
		return d.resolveTrade(ctx, s, "sell", msgText, target)

	case session.PendingPrivateKey:
		return d.resolveWalletConnect(s, msgText)

	case session.PendingSettingValue:
		return d.resolveSettingValue(s, target, msgText)
	}

	log.Printf("⚠️ Unhandled pending state %d for %d", pending, s.UserID)
	return []Reply{warn("I lost track of what we were doing. Use the menu below.")}
}

func (d *Dispatcher) resolveTokenInfo(ctx context.Context, s *session.Session, msgText, target string) []Reply {
	if !validate.Address(msgText) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}

	info, err := d.market.TokenInfo(ctx, msgText)
	if err != nil {
		return []Reply{collabFail("token lookup", err)}
	}

	if target == "chart" {
		return []Reply{text(priceChart(info))}
	}

	return []Reply{text(formatTokenInfo(info))}
}

func (d *Dispatcher) resolvePriceAlert(s *session.Session, msgText string) []Reply {
	fields := strings.Fields(msgText)
	if len(fields) != 3 {
		return []Reply{errText("Send: `<contract> <above|below> <price>`")}
	}

	contract := fields[0]
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	cond, ok := validate.AlertCondition(fields[1])
	if !ok {
		return []Reply{errText("Condition must be `above` or `below`.")}
	}
	price, ok := validate.Amount(fields[2])
	if !ok {
		return []Reply{errText("Invalid price. Send a positive number.")}
	}

	s.PriceAlerts = append(s.PriceAlerts, session.PriceAlert{
		Token:     contract,
		Condition: cond,
		Price:     price,
		CreatedAt: time.Now().Unix(),
	})

	return []Reply{text(fmt.Sprintf("🔔 Alert set: %s goes *%s* $%g", shortAddr(contract), cond, price))}
}

func (d *Dispatcher) resolveSnipeSetup(s *session.Session, msgText string) []Reply {
	fields := strings.Fields(msgText)
	if len(fields) != 3 {
		return []Reply{errText("Send: `<contract> <amount> <trigger price>`")}
	}

	contract := fields[0]
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	amount, ok := validate.Amount(fields[1])
	if !ok {
		return []Reply{errText("Invalid amount. Send a positive number like 0.1")}
	}
	trigger, ok := validate.Amount(fields[2])
	if !ok {
		return []Reply{errText("Invalid trigger price. Send a positive number.")}
	}

	s.SnipeConfigs = append(s.SnipeConfigs, session.SnipeConfig{
		Token:        contract,
		Amount:       amount,
		TriggerPrice: trigger,
		Active:       true,
		CreatedAt:    time.Now().Unix(),
	})

	return []Reply{text(fmt.Sprintf(
		"🎯 *Snipe configured*\n\nToken: `%s`\nAmount: %g MON\nTrigger: $%g\n\nThe snipe stays active until it fires or you cancel it.",
		contract, amount, trigger))}
}

// quickSnipeFromMenu is the menu-flow variant of /snipe: immediate,
// nothing saved.
func (d *Dispatcher) quickSnipeFromMenu(ctx context.Context, s *session.Session, contract, amountStr string) []Reply {
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	amount, ok := validate.Amount(amountStr)
	if !ok {
		return []Reply{errText("Invalid amount. Send a positive number like 0.1")}
	}

	price, err := d.market.TokenPrice(ctx, contract)
	if err != nil {
		return []Reply{collabFail("price lookup", err)}
	}

	return []Reply{text(fmt.Sprintf(
		"⚡ *Quick snipe fired*\n\nToken: `%s`\nAmount: %g MON\nEntry: $%.6f\nGas: %s",
		contract, amount, price, s.Settings.GasPrice))}
}

// resolveTrade handles the menu buy/sell flows. Unlike the quick
// commands, these are recorded in the trade history and the trade log.
// target "quote" previews instead of executing.
func (d *Dispatcher) resolveTrade(ctx context.Context, s *session.Session, side, msgText, target string) []Reply {
	fields := strings.Fields(msgText)
	if len(fields) != 2 {
		return []Reply{errText("Send: `<contract> <amount>`")}
	}

	contract := fields[0]
	if !validate.Address(contract) {
		return []Reply{errText("Invalid contract address. Expected a 0x address.")}
	}
	amount, ok := validate.Amount(fields[1])
	if !ok {
		return []Reply{errText("Invalid amount. Send a positive number like 0.1")}
	}
	if side == "buy" && amount > s.Settings.MaxBuyAmount {
		return []Reply{errText(fmt.Sprintf("Amount exceeds your max buy limit of %g MON. Adjust it in ⚙️ Settings.", s.Settings.MaxBuyAmount))}
	}
	if _, errReply := tradingWallet(s); errReply.Text != "" {
		return []Reply{errReply}
	}

	quote, err := d.market.TradeQuote(ctx, contract, amount, s.Settings.Slippage)
	if err != nil {
		return []Reply{collabFail("quote", err)}
	}

	if target == "quote" {
		return []Reply{text(fmt.Sprintf(
			"💱 *Quote*\n\nToken: `%s`\nIn: %g MON\nOut: %.4f tokens\nPrice: $%.6f\nImpact: %.2f%%\nMin received: %.4f (slippage %d%%)",
			contract, amount, quote.TokensOut, quote.PriceUSD, quote.PriceImpact, quote.MinReceived, s.Settings.Slippage))}
	}

	trade := session.Trade{
		Type:       side,
		Token:      contract,
		Amount:     amount,
		Price:      quote.PriceUSD,
		Success:    true,
		ExecutedAt: time.Now().Unix(),
	}
	s.RecordTrade(trade)

	if d.db != nil {
		rec := &storage.TradeRecord{
			UserID:    s.UserID,
			TradeType: side,
			Token:     contract,
			Amount:    amount,
			Price:     quote.PriceUSD,
			Success:   true,
			CreatedAt: trade.ExecutedAt,
		}
		if err := d.db.AppendTrade(rec); err != nil {
			log.Printf("⚠️ Failed to append trade for %d: %v", s.UserID, err)
		}
	}

	verb := "Buy"
	if side == "sell" {
		verb = "Sell"
	}
	return []Reply{text(fmt.Sprintf(
		"✅ *%s executed*\n\nToken: `%s`\nAmount: %g MON\nTokens: %.4f\nPrice: $%.6f\nImpact: %.2f%%",
		verb, contract, amount, quote.TokensOut, quote.PriceUSD, quote.PriceImpact))}
}

// resolveWalletConnect imports a wallet from "<address> <secret>". The
// secret is a hex private key or a BIP-39 seed phrase; it is encrypted
// before it touches the session.
func (d *Dispatcher) resolveWalletConnect(s *session.Session, msgText string) []Reply {
	address, secret, hasSecret := strings.Cut(strings.TrimSpace(msgText), " ")
	secret = strings.TrimSpace(secret)

	if !validate.Address(address) {
		return []Reply{errText("Invalid wallet address. Expected a 0x address.")}
	}
	if s.FindWallet(address) != nil {
		return []Reply{warn("This wallet is already added.")}
	}

	w := session.Wallet{
		Name:    fmt.Sprintf("Wallet %d", len(s.Wallets)+1),
		Address: address,
		AddedAt: time.Now().Unix(),
		Kind:    session.WalletWatchOnly,
	}

	var reply string
	if hasSecret {
		if !validate.PrivateKey(secret) && !validate.SeedPhrase(secret) {
			return []Reply{errText("That doesn't look like a private key or seed phrase.")}
		}
		encrypted, err := d.enc.Encrypt(secret)
		if err != nil {
			return []Reply{collabFail("encryption", err)}
		}
		w.EncryptedSecret = encrypted
		w.Kind = session.WalletImported
		reply = fmt.Sprintf("✅ Wallet connected!\n\n`%s`\n\nYour key is stored encrypted. Delete the message containing it.", address)
	} else {
		reply = fmt.Sprintf("👀 Watching wallet `%s`\n\nNo key stored; it can hold balances but not trade.", address)
	}

	s.AddWallet(w)
	if len(s.Wallets) == 1 {
		reply += "\n\n⭐ Set as your default wallet."
	}
	return []Reply{text(reply)}
}

func (d *Dispatcher) resolveSettingValue(s *session.Session, setting, msgText string) []Reply {
	msgText = strings.TrimSpace(msgText)

	switch setting {
	case "slippage":
		v, ok := validate.Slippage(msgText)
		if !ok {
			return []Reply{errText("Slippage must be a whole number between 1 and 20.")}
		}
		s.Settings.Slippage = v
		return []Reply{text(fmt.Sprintf("✅ Slippage set to %d%%", v))}

	case "gasprice":
		tier, ok := validate.GasTier(msgText)
		if !ok {
			return []Reply{errText("Gas price must be `slow`, `standard` or `fast`.")}
		}
		s.Settings.GasPrice = tier
		return []Reply{text(fmt.Sprintf("✅ Gas price set to %s", tier))}

	case "stoploss":
		v, ok := validate.Percentage(msgText)
		if !ok {
			return []Reply{errText("Stop loss must be a percentage between 0 and 100.")}
		}
		s.Settings.StopLoss = v
		return []Reply{text(fmt.Sprintf("✅ Stop loss set to %g%%", v))}

	case "takeprofit":
		v, ok := validate.Percentage(msgText)
		if !ok {
			return []Reply{errText("Take profit must be a percentage between 0 and 100.")}
		}
		s.Settings.TakeProfit = v
		return []Reply{text(fmt.Sprintf("✅ Take profit set to %g%%", v))}

	case "maxbuy":
		v, ok := validate.Amount(msgText)
		if !ok {
			return []Reply{errText("Max buy must be a positive number like 0.5")}
		}
		s.Settings.MaxBuyAmount = v
		return []Reply{text(fmt.Sprintf("✅ Max buy amount set to %g MON", v))}
	}

	log.Printf("⚠️ Unknown setting %q for %d", setting, s.UserID)
	return []Reply{warn("I lost track of which setting we were changing. Open ⚙️ Settings again.")}
}
