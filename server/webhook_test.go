package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"monad-sniper-bot/internal/menu"
)

func TestWebhookLiveness(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !gjson.Get(body, "status").Exists() || !gjson.Get(body, "timestamp").Exists() {
		t.Errorf("Liveness body missing fields: %s", body)
	}
}

func TestWebhookRejectsOtherMethods(t *testing.T) {
	s := &Server{}

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		req := httptest.NewRequest(method, "/webhook", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s status = %d, expected 405", method, rec.Code)
		}
		if got := gjson.Get(rec.Body.String(), "error").String(); got != "Method not allowed" {
			t.Errorf("%s body = %s", method, rec.Body.String())
		}
	}
}

func TestWebhookBadPayload(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Bad payload status = %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "status").String(); got != "ERROR" {
		t.Errorf("Bad payload body = %s", rec.Body.String())
	}
}

func TestWebhookIgnoresEmptyUpdate(t *testing.T) {
	// An update that is neither a message nor a callback is dropped
	// without touching the Telegram API.
	s := &Server{}

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id": 1}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Empty update status = %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "status").String(); got != "OK" {
		t.Errorf("Empty update body = %s", rec.Body.String())
	}
}

func TestKeyboardBuilders(t *testing.T) {
	kb := mainKeyboard()
	if len(kb.Keyboard) != len(menu.MainLabels) {
		t.Errorf("Main keyboard rows = %d, expected %d", len(kb.Keyboard), len(menu.MainLabels))
	}
	if !kb.ResizeKeyboard {
		t.Error("Main keyboard should resize")
	}

	def, _ := menu.Get("wallet")
	ik := inlineKeyboard(def.Rows)
	if len(ik.InlineKeyboard) != len(def.Rows) {
		t.Errorf("Inline rows = %d, expected %d", len(ik.InlineKeyboard), len(def.Rows))
	}
	first := ik.InlineKeyboard[0][0]
	if first.CallbackData == nil || *first.CallbackData != "wallet_connect" {
		t.Errorf("First button data = %v", first.CallbackData)
	}
}
