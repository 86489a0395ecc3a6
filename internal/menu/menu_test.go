package menu

import (
	"strings"
	"testing"
)

func TestEveryButtonOpensAMenu(t *testing.T) {
	for label, id := range ButtonMenus {
		if _, ok := Get(id); !ok {
			t.Errorf("Button %q maps to unknown menu %q", label, id)
		}
	}
	for _, row := range MainLabels {
		for _, label := range row {
			if _, ok := ButtonMenus[label]; !ok {
				t.Errorf("Keyboard label %q has no menu mapping", label)
			}
		}
	}
}

func TestBackReachability(t *testing.T) {
	for _, id := range IDs() {
		if id == "main" {
			continue
		}
		def, _ := Get(id)
		found := false
		for _, row := range def.Rows {
			for _, a := range row {
				if strings.HasSuffix(a.ID, "_back") {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("Menu %q has no back action", id)
		}
	}
}

func TestCallbackIDsAreFeaturePrefixed(t *testing.T) {
	for _, id := range IDs() {
		def, _ := Get(id)
		for _, row := range def.Rows {
			for _, a := range row {
				if !strings.Contains(a.ID, "_") {
					t.Errorf("Menu %q action %q lacks a feature_action shape", id, a.ID)
				}
				if a.Label == "" {
					t.Errorf("Menu %q action %q has no label", id, a.ID)
				}
			}
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	sum := Summary{
		Wallets:       2,
		DefaultWallet: "0xabc",
		Monitored:     3,
		ActiveSnipes:  1,
		Trades:        5,
		Slippage:      3,
		GasPrice:      "standard",
		Notifications: true,
	}

	for _, id := range IDs() {
		body1, rows1, ok := Render(id, sum)
		body2, rows2, _ := Render(id, sum)
		if !ok {
			t.Fatalf("Render(%q) failed", id)
		}
		if body1 != body2 {
			t.Errorf("Render(%q) is not stable", id)
		}
		if len(rows1) != len(rows2) {
			t.Errorf("Render(%q) rows changed between calls", id)
		}
	}
}

func TestRenderCounters(t *testing.T) {
	body, _, ok := Render("main", Summary{Wallets: 4, Monitored: 2, ActiveSnipes: 1, Trades: 9})
	if !ok {
		t.Fatal("main menu missing")
	}
	for _, want := range []string{"Wallets: 4", "Watching: 2", "Active snipes: 1", "Trades: 9"} {
		if !strings.Contains(body, want) {
			t.Errorf("Main body missing %q:\n%s", want, body)
		}
	}

	body, _, _ = Render("wallet", Summary{Wallets: 0})
	if !strings.Contains(body, "none") {
		t.Errorf("Wallet menu should show none when no default set:\n%s", body)
	}

	if _, _, ok := Render("nope", Summary{}); ok {
		t.Error("Render accepted unknown menu ID")
	}
}
