package session

import "time"

// PendingInput identifies which prompt, if any, the next free-text
// message from the user will answer. A session holds at most one.
type PendingInput int

const (
	PendingNone PendingInput = iota
	PendingMonitorAddress
	PendingMonitorRemoval
	PendingTokenInfo
	PendingPriceAlert
	PendingSnipeSetup
	PendingQuickSnipe
	PendingBuyTarget
	PendingSellTarget
	PendingPrivateKey
	PendingSettingValue
)

// Wallet is a tracked wallet. The secret is stored encrypted and only
// present for imported wallets; watch-only wallets leave it empty.
type Wallet struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	EncryptedSecret string `json:"encryptedSecret,omitempty"`
	IsDefault       bool   `json:"isDefault"`
	AddedAt         int64  `json:"addedAt"`
	Kind            string `json:"kind"` // WalletImported or WalletWatchOnly
}

// Wallet kinds
const (
	WalletImported  = "imported"
	WalletWatchOnly = "watch-only"
)

type MonitoredToken struct {
	Address    string  `json:"address"`
	Name       string  `json:"name,omitempty"`
	Symbol     string  `json:"symbol,omitempty"`
	LastPrice  float64 `json:"lastPrice"`
	AddedAt    int64   `json:"addedAt"`
	LastUpdate int64   `json:"lastUpdate"`
}

type PriceAlert struct {
	Token     string  `json:"token"`
	Condition string  `json:"condition"` // "above" or "below"
	Price     float64 `json:"price"`
	CreatedAt int64   `json:"createdAt"`
}

type SnipeConfig struct {
	Token        string  `json:"token"`
	Amount       float64 `json:"amount"`
	TriggerPrice float64 `json:"triggerPrice"`
	Active       bool    `json:"active"`
	CreatedAt    int64   `json:"createdAt"`
}

type Trade struct {
	Type       string  `json:"type"` // "buy" or "sell"
	Token      string  `json:"token"`
	Amount     float64 `json:"amount"`
	Price      float64 `json:"price"`
	Profit     float64 `json:"profit"`
	Success    bool    `json:"success"`
	ExecutedAt int64   `json:"executedAt"`
}

type Settings struct {
	Slippage      int     `json:"slippage"`
	GasPrice      string  `json:"gasPrice"`
	Notifications bool    `json:"notifications"`
	StopLoss      float64 `json:"stopLoss"`
	TakeProfit    float64 `json:"takeProfit"`
	MaxBuyAmount  float64 `json:"maxBuyAmount"`
	AutoBuy       bool    `json:"autoBuy"`
}

func DefaultSettings() Settings {
	return Settings{
		Slippage:      3,
		GasPrice:      "standard",
		Notifications: true,
		StopLoss:      5,
		TakeProfit:    20,
		MaxBuyAmount:  0.1,
		AutoBuy:       false,
	}
}

// Session is the full per-user state
type Session struct {
	UserID          int64            `json:"userId"`
	Wallets         []Wallet         `json:"wallets"`
	MonitoredTokens []MonitoredToken `json:"monitoredTokens"`
	PriceAlerts     []PriceAlert     `json:"priceAlerts"`
	SnipeConfigs    []SnipeConfig    `json:"snipeConfigs"`
	TradeHistory    []Trade          `json:"tradeHistory"`
	Settings        Settings         `json:"settings"`
	CreatedAt       int64            `json:"createdAt"`

	// Pending prompt state. PendingSetting names the setting a
	// PendingSettingValue prompt is for.
	Pending        PendingInput `json:"pending"`
	PendingSetting string       `json:"pendingSetting,omitempty"`
	PendingTarget  string       `json:"pendingTarget,omitempty"`
}

func newSession(userID int64) *Session {
	return &Session{
		UserID:    userID,
		Settings:  DefaultSettings(),
		CreatedAt: time.Now().Unix(),
	}
}

// SetPending arms a prompt, replacing any previous one. target carries
// context for the prompt (a setting name, a token address).
func (s *Session) SetPending(p PendingInput, target string) {
	s.Pending = p
	if p == PendingSettingValue {
		s.PendingSetting = target
		s.PendingTarget = ""
	} else {
		s.PendingSetting = ""
		s.PendingTarget = target
	}
}

// TakePending consumes the armed prompt. It clears the pending state
// unconditionally, so a prompt answers at most one message even when
// the answer fails validation.
func (s *Session) TakePending() (PendingInput, string) {
	p := s.Pending
	target := s.PendingTarget
	if p == PendingSettingValue {
		target = s.PendingSetting
	}
	s.Pending = PendingNone
	s.PendingSetting = ""
	s.PendingTarget = ""
	return p, target
}

// ClearPending drops any armed prompt
func (s *Session) ClearPending() {
	s.Pending = PendingNone
	s.PendingSetting = ""
	s.PendingTarget = ""
}

// AddWallet appends a wallet. The first wallet a user adds becomes the
// default; later ones do not.
func (s *Session) AddWallet(w Wallet) {
	if w.AddedAt == 0 {
		w.AddedAt = time.Now().Unix()
	}
	w.IsDefault = len(s.Wallets) == 0
	s.Wallets = append(s.Wallets, w)
}

// RemoveWallet deletes a wallet by address. Removing the default does
// not promote another wallet; the user picks a new default explicitly.
func (s *Session) RemoveWallet(address string) bool {
	for i, w := range s.Wallets {
		if w.Address == address {
			s.Wallets = append(s.Wallets[:i], s.Wallets[i+1:]...)
			return true
		}
	}
	return false
}

// SetDefaultWallet marks the wallet at address as default and clears
// the flag on every other wallet.
func (s *Session) SetDefaultWallet(address string) bool {
	found := false
	for i := range s.Wallets {
		if s.Wallets[i].Address == address {
			found = true
		}
	}
	if !found {
		return false
	}
	for i := range s.Wallets {
		s.Wallets[i].IsDefault = s.Wallets[i].Address == address
	}
	return true
}

// DefaultWallet returns the default wallet, or nil when the user has
// none set.
func (s *Session) DefaultWallet() *Wallet {
	for i := range s.Wallets {
		if s.Wallets[i].IsDefault {
			return &s.Wallets[i]
		}
	}
	return nil
}

// FindWallet returns the wallet with the given address, or nil.
func (s *Session) FindWallet(address string) *Wallet {
	for i := range s.Wallets {
		if s.Wallets[i].Address == address {
			return &s.Wallets[i]
		}
	}
	return nil
}

// IsMonitoring reports whether the token is already on the watch list
func (s *Session) IsMonitoring(address string) bool {
	for _, m := range s.MonitoredTokens {
		if m.Address == address {
			return true
		}
	}
	return false
}

// RemoveMonitoredAt drops the token at the given watch-list position
// and returns it. The position is bounds-checked.
func (s *Session) RemoveMonitoredAt(i int) (MonitoredToken, bool) {
	if i < 0 || i >= len(s.MonitoredTokens) {
		return MonitoredToken{}, false
	}
	m := s.MonitoredTokens[i]
	s.MonitoredTokens = append(s.MonitoredTokens[:i], s.MonitoredTokens[i+1:]...)
	return m, true
}

// RecordTrade appends to the in-session trade history
func (s *Session) RecordTrade(t Trade) {
	if t.ExecutedAt == 0 {
		t.ExecutedAt = time.Now().Unix()
	}
	s.TradeHistory = append(s.TradeHistory, t)
}
