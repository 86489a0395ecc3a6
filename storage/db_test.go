package storage

import (
	"os"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbPath := tmpfile.Name()
	tmpfile.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestSessionRecords(t *testing.T) {
	db := newTestDB(t)

	t.Run("LoadUnknownUser", func(t *testing.T) {
		data, err := db.LoadSession(42)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if data != nil {
			t.Error("Unknown user should return nil data")
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		blob := []byte(`{"wallets":[]}`)
		if err := db.SaveSession(42, blob); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		data, err := db.LoadSession(42)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(data) != string(blob) {
			t.Errorf("Loaded %q, expected %q", data, blob)
		}
	})

	t.Run("Upsert", func(t *testing.T) {
		if err := db.SaveSession(42, []byte(`{"v":1}`)); err != nil {
			t.Fatal(err)
		}
		if err := db.SaveSession(42, []byte(`{"v":2}`)); err != nil {
			t.Fatalf("Second save should update, got: %v", err)
		}

		data, _ := db.LoadSession(42)
		if string(data) != `{"v":2}` {
			t.Errorf("Expected updated blob, got %q", data)
		}
	})
}

func TestTradeLog(t *testing.T) {
	db := newTestDB(t)

	base := time.Now().Unix()
	trades := []*TradeRecord{
		{UserID: 7, TradeType: "buy", Token: "0xaaa", Amount: 0.05, Price: 0.000125, CreatedAt: base - 20, Success: true},
		{UserID: 7, TradeType: "sell", Token: "0xaaa", Amount: 50, Price: 0.000150, Profit: 12.5, CreatedAt: base - 10, Success: true},
		{UserID: 8, TradeType: "buy", Token: "0xbbb", Amount: 1, Price: 2, CreatedAt: base, Success: false},
	}

	for _, tr := range trades {
		if err := db.AppendTrade(tr); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if tr.ID == 0 {
			t.Error("AppendTrade should backfill the row id")
		}
	}

	t.Run("PerUserIsolation", func(t *testing.T) {
		got, err := db.RecentTrades(7, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("User 7 should have 2 trades, got %d", len(got))
		}
	})

	t.Run("NewestFirst", func(t *testing.T) {
		got, _ := db.RecentTrades(7, 10)
		if got[0].TradeType != "sell" {
			t.Errorf("Newest trade should be the sell, got %s", got[0].TradeType)
		}
		if got[0].Profit != 12.5 {
			t.Errorf("Profit = %v, expected 12.5", got[0].Profit)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		got, _ := db.RecentTrades(7, 1)
		if len(got) != 1 {
			t.Errorf("Limit 1 returned %d rows", len(got))
		}
	})
}
