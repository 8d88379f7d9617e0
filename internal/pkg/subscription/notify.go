package subscription

import (
	"errors"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/telewave/vpnbot/internal/pkg/env"
)

// TelegramNotifier sends plain-text messages through the Bot API.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifierFromEnv() (*TelegramNotifier, error) {
	token := strings.TrimSpace(env.GetEnv("BOT_TOKEN", ""))
	if token == "" {
		return nil, errors.New("BOT_TOKEN is not configured")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{bot: bot}, nil
}

// BotUsername returns the authorized bot's username, used to build the
// post-payment redirect back into the chat.
func (n *TelegramNotifier) BotUsername() string {
	return n.bot.Self.UserName
}

func (n *TelegramNotifier) Notify(tgID int64, text string) {
	msg := tgbotapi.NewMessage(tgID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("Failed to notify user %d: %v", tgID, err)
	}
}
