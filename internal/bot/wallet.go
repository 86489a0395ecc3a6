package bot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"monad-sniper-bot/internal/menu"
	"monad-sniper-bot/internal/session"
)

func (d *Dispatcher) handleWalletCallback(ctx context.Context, s *session.Session, data string) []Reply {
	switch {
	case data == "wallet_connect":
		s.SetPending(session.PendingPrivateKey, "")
		return []Reply{text("🔗 *Connect a wallet*\n\nSend: `<address> <private key or seed phrase>`\n\nThe key is encrypted immediately and the address becomes your wallet. Send just the address for a watch-only wallet.")}

	case data == "wallet_generate":
		return d.generateWallet(s)

	case data == "wallet_list":
		return []Reply{text(formatWalletList(s))}

	case data == "wallet_balance":
		return d.showBalance(ctx, s)

	case data == "wallet_default":
		return d.pickWallet(s, "wallet_use", "⭐ Pick your default wallet:")

	case data == "wallet_remove":
		return d.pickWallet(s, "wallet_drop", "🗑 Pick the wallet to remove:")

	case data == "wallet_export":
		return d.exportWallets(s)

	case strings.HasPrefix(data, "wallet_use_"):
		address := strings.TrimPrefix(data, "wallet_use_")
		if !s.SetDefaultWallet(address) {
			return []Reply{warn("That wallet is no longer in your list.")}
		}
		return []Reply{text(fmt.Sprintf("⭐ Default wallet set to `%s`", address))}

	case strings.HasPrefix(data, "wallet_drop_"):
		address := strings.TrimPrefix(data, "wallet_drop_")
		removed := s.FindWallet(address)
		wasDefault := removed != nil && removed.IsDefault
		if !s.RemoveWallet(address) {
			return []Reply{warn("That wallet is no longer in your list.")}
		}
		reply := fmt.Sprintf("🗑 Removed wallet `%s`", address)
		if wasDefault {
			reply += "\n\n⚠️ That was your default wallet. Pick a new one with ⭐ Set Default."
		}
		return []Reply{text(reply)}
	}

	return []Reply{warn("That button is no longer valid."), d.menuReply(s, "main")}
}

// tradingWallet returns the default wallet when it can sign trades,
// or the error reply to send instead.
func tradingWallet(s *session.Session) (*session.Wallet, Reply) {
	w := s.DefaultWallet()
	if w == nil {
		return nil, errText("No default wallet set. Add one in 👛 Wallet Management first.")
	}
	if w.EncryptedSecret == "" {
		return nil, errText("Your default wallet is watch-only. Connect one with its key to trade.")
	}
	return w, Reply{}
}

// generateWallet creates a fresh wallet with a random key. The raw key
// is shown exactly once; only the ciphertext is kept.
func (d *Dispatcher) generateWallet(s *session.Session) []Reply {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return []Reply{collabFail("key generation", err)}
	}
	addrBytes := make([]byte, 20)
	if _, err := rand.Read(addrBytes); err != nil {
		return []Reply{collabFail("key generation", err)}
	}

	privateKey := "0x" + hex.EncodeToString(keyBytes)
	address := "0x" + hex.EncodeToString(addrBytes)

	encrypted, err := d.enc.Encrypt(privateKey)
	if err != nil {
		return []Reply{collabFail("encryption", err)}
	}

	s.AddWallet(session.Wallet{
		Name:            fmt.Sprintf("Wallet %d", len(s.Wallets)+1),
		Address:         address,
		EncryptedSecret: encrypted,
		AddedAt:         time.Now().Unix(),
		Kind:            session.WalletImported,
	})

	return []Reply{text(fmt.Sprintf(
		"✨ *New wallet generated*\n\nAddress:\n`%s`\n\nPrivate key:\n`%s`\n\n🛡️ Save the key somewhere safe and delete this message. It will not be shown again.",
		address, privateKey))}
}

// pickWallet renders the wallet list as inline buttons with the given
// callback prefix.
func (d *Dispatcher) pickWallet(s *session.Session, prefix, prompt string) []Reply {
	if len(s.Wallets) == 0 {
		return []Reply{errText("You have no wallets yet. Connect or generate one first.")}
	}

	rows := make([][]menu.Action, 0, len(s.Wallets))
	for _, w := range s.Wallets {
		label := fmt.Sprintf("%s (%s)", w.Name, shortAddr(w.Address))
		if w.IsDefault {
			label = "⭐ " + label
		}
		rows = append(rows, []menu.Action{{ID: prefix + "_" + w.Address, Label: label}})
	}

	return []Reply{{Text: prompt, Keyboard: rows}}
}

func (d *Dispatcher) exportWallets(s *session.Session) []Reply {
	var exportable []session.Wallet
	for _, w := range s.Wallets {
		if w.EncryptedSecret != "" {
			exportable = append(exportable, w)
		}
	}
	if len(exportable) == 0 {
		return []Reply{errText("Nothing to export. Only wallets with stored keys can be backed up.")}
	}

	var b strings.Builder
	b.WriteString("📤 *Encrypted backup*\n\nEach blob is AES-encrypted with your server key. Store them offline.\n")
	for _, w := range exportable {
		fmt.Fprintf(&b, "\n*%s* `%s`\n`%s`\n", w.Name, w.Address, w.EncryptedSecret)
	}

	return []Reply{text(b.String())}
}

func formatWalletList(s *session.Session) string {
	if len(s.Wallets) == 0 {
		return "👛 You have no wallets yet.\n\nUse 🔗 Connect Wallet or ✨ Generate New to add one."
	}

	var b strings.Builder
	b.WriteString("👛 *Your wallets*\n")
	for _, w := range s.Wallets {
		marker := "  "
		if w.IsDefault {
			marker = "⭐"
		}
		kind := w.Kind
		if kind == "" {
			kind = session.WalletWatchOnly
			if w.EncryptedSecret != "" {
				kind = session.WalletImported
			}
		}
		fmt.Fprintf(&b, "\n%s *%s* (%s)\n`%s`\n", marker, w.Name, kind, w.Address)
	}
	return b.String()
}
