package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"portfolioAdvisor/internal/models"
)

// sendTelegram pushes the briefing text to the configured chat. Telegram
// is an optional second channel; missing credentials just skip it.
func (n *Notifier) sendTelegram(b models.Briefing) bool {
	if n.TelegramToken == "" || n.TelegramChatID == 0 {
		return false
	}

	api, err := tgbotapi.NewBotAPI(n.TelegramToken)
	if err != nil {
		log.Printf("notify: telegram init failed: %v", err)
		return false
	}

	text := fmt.Sprintf("*Portfolio Briefing — %s*\n\n%s", b.Date, b.Content)
	msg := tgbotapi.NewMessage(n.TelegramChatID, text)
	msg.ParseMode = "Markdown"
	if _, err := api.Send(msg); err != nil {
		log.Printf("notify: telegram send failed: %v", err)
		return false
	}
	log.Printf("notify: briefing sent to telegram chat %d", n.TelegramChatID)
	return true
}
