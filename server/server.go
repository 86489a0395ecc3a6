package server

import (
	"context"
	"log"

	"monad-sniper-bot/internal/bot"
	"monad-sniper-bot/internal/menu"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Server bridges Telegram updates to the dispatcher and sends the
// replies back out.
type Server struct {
	api        *tgbotapi.BotAPI
	dispatcher *bot.Dispatcher
}

func New(api *tgbotapi.BotAPI, d *bot.Dispatcher) *Server {
	return &Server{api: api, dispatcher: d}
}

// HandleUpdate normalizes one Telegram update, dispatches it, and
// sends the replies. Updates that are neither messages nor callback
// presses are ignored.
func (s *Server) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	var ev bot.Event
	var chatID int64

	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
		ev = bot.Event{UserID: chatID, Text: update.Message.Text}

	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			return nil
		}
		chatID = cb.Message.Chat.ID
		ev = bot.Event{UserID: chatID, Callback: cb.Data}

		// Stop the button spinner
		if _, err := s.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("⚠️ Failed to answer callback: %v", err)
		}

	default:
		return nil
	}

	replies := s.dispatcher.Dispatch(ctx, ev)
	for _, r := range replies {
		if err := s.send(chatID, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) send(chatID int64, r bot.Reply) error {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	msg.ParseMode = "Markdown"

	switch {
	case r.MainKeyboard:
		msg.ReplyMarkup = mainKeyboard()
	case r.Menu != "":
		def, ok := menu.Get(r.Menu)
		if ok {
			msg.ReplyMarkup = inlineKeyboard(def.Rows)
		}
	case len(r.Keyboard) > 0:
		msg.ReplyMarkup = inlineKeyboard(r.Keyboard)
	}

	if _, err := s.api.Send(msg); err != nil {
		log.Printf("❌ Failed to send message to %d: %v", chatID, err)
		return err
	}
	return nil
}

// mainKeyboard builds the persistent reply keyboard
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(menu.MainLabels))
	for _, labels := range menu.MainLabels {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func inlineKeyboard(rows [][]menu.Action) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, a := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(a.Label, a.ID))
		}
		out = append(out, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}

// RunPolling consumes updates over long polling. Used when no webhook
// URL is configured.
func (s *Server) RunPolling(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.api.GetUpdatesChan(u)

	log.Println("🔄 Polling for updates...")
	for {
		select {
		case <-ctx.Done():
			s.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if err := s.HandleUpdate(ctx, update); err != nil {
				log.Printf("❌ Update error: %v", err)
			}
		}
	}
}
