package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ServeHTTP is the webhook endpoint. GET answers the liveness probe,
// POST takes a Telegram update, everything else is rejected.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "Bot is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})

	case http.MethodPost:
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("❌ Bad webhook payload: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"status": "ERROR"})
			return
		}

		if err := s.HandleUpdate(r.Context(), update); err != nil {
			log.Printf("❌ Webhook update error: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"status": "ERROR"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "OK"})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
	}
}
