package session

import (
	"os"
	"sync"
	"testing"

	"monad-sniper-bot/storage"
)

func TestWalletInvariants(t *testing.T) {
	t.Run("FirstWalletIsDefault", func(t *testing.T) {
		s := newSession(1)
		s.AddWallet(Wallet{Name: "Main", Address: "0xaaa"})
		s.AddWallet(Wallet{Name: "Trading", Address: "0xbbb"})

		def := s.DefaultWallet()
		if def == nil || def.Address != "0xaaa" {
			t.Fatalf("Default = %+v, expected first wallet", def)
		}
		if s.Wallets[1].IsDefault {
			t.Error("Second wallet should not be default")
		}
	})

	t.Run("RemovingDefaultDoesNotPromote", func(t *testing.T) {
		s := newSession(1)
		s.AddWallet(Wallet{Name: "Main", Address: "0xaaa"})
		s.AddWallet(Wallet{Name: "Trading", Address: "0xbbb"})

		if !s.RemoveWallet("0xaaa") {
			t.Fatal("RemoveWallet failed")
		}
		if s.DefaultWallet() != nil {
			t.Error("Remaining wallet was auto-promoted to default")
		}
	})

	t.Run("SetDefaultIsExclusive", func(t *testing.T) {
		s := newSession(1)
		s.AddWallet(Wallet{Address: "0xaaa"})
		s.AddWallet(Wallet{Address: "0xbbb"})

		if !s.SetDefaultWallet("0xbbb") {
			t.Fatal("SetDefaultWallet failed")
		}
		if s.Wallets[0].IsDefault || !s.Wallets[1].IsDefault {
			t.Errorf("Defaults = %v/%v", s.Wallets[0].IsDefault, s.Wallets[1].IsDefault)
		}

		if s.SetDefaultWallet("0xccc") {
			t.Error("SetDefaultWallet accepted unknown address")
		}
	})
}

func TestPendingPrompt(t *testing.T) {
	t.Run("LastArmedWins", func(t *testing.T) {
		s := newSession(1)
		s.SetPending(PendingMonitorAddress, "")
		s.SetPending(PendingSettingValue, "slippage")

		p, target := s.TakePending()
		if p != PendingSettingValue || target != "slippage" {
			t.Errorf("TakePending = %v, %q", p, target)
		}
	})

	t.Run("ConsumedAtMostOnce", func(t *testing.T) {
		s := newSession(1)
		s.SetPending(PendingBuyTarget, "")

		if p, _ := s.TakePending(); p != PendingBuyTarget {
			t.Fatalf("First take = %v", p)
		}
		if p, _ := s.TakePending(); p != PendingNone {
			t.Errorf("Second take = %v, prompt was not consumed", p)
		}
	})

	t.Run("TargetClearedWithPrompt", func(t *testing.T) {
		s := newSession(1)
		s.SetPending(PendingPriceAlert, "0xtoken")
		s.ClearPending()
		if s.Pending != PendingNone || s.PendingTarget != "" {
			t.Errorf("ClearPending left %v %q", s.Pending, s.PendingTarget)
		}
	})
}

func TestDefaultSettings(t *testing.T) {
	s := newSession(42)
	if s.Settings.Slippage != 3 {
		t.Errorf("Slippage = %d", s.Settings.Slippage)
	}
	if s.Settings.GasPrice != "standard" {
		t.Errorf("GasPrice = %q", s.Settings.GasPrice)
	}
	if !s.Settings.Notifications {
		t.Error("Notifications should default on")
	}
	if s.Settings.MaxBuyAmount != 0.1 {
		t.Errorf("MaxBuyAmount = %f", s.Settings.MaxBuyAmount)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	f, err := os.CreateTemp("", "sessions-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := storage.New(f.Name())
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewStore(db)
}

func TestStorePersistence(t *testing.T) {
	store := newTestStore(t)

	err := store.WithSession(7, func(s *Session) error {
		s.AddWallet(Wallet{Name: "Main", Address: "0xaaa"})
		s.Settings.Slippage = 10
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// A second store over the same db simulates a restart
	reloaded := NewStore(store.db)
	err = reloaded.WithSession(7, func(s *Session) error {
		if len(s.Wallets) != 1 || s.Wallets[0].Address != "0xaaa" {
			t.Errorf("Wallets = %+v", s.Wallets)
		}
		if s.Settings.Slippage != 10 {
			t.Errorf("Slippage = %d", s.Settings.Slippage)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestStoreSerializesPerUser(t *testing.T) {
	store := newTestStore(t)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.WithSession(1, func(s *Session) error {
				s.Settings.Slippage++
				return nil
			})
		}()
	}
	wg.Wait()

	snap := store.Peek(1)
	if snap.Settings.Slippage != 3+workers {
		t.Errorf("Slippage = %d, expected %d", snap.Settings.Slippage, 3+workers)
	}
}
