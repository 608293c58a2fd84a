package notify

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"portfolioAdvisor/internal/models"
)

// Notifier delivers a rendered briefing over the configured channels.
// Every channel is optional; a channel with missing credentials is
// skipped, and no delivery failure is fatal to a run.
type Notifier struct {
	ResendKey string
	From      string
	To        string

	TelegramToken  string
	TelegramChatID int64
}

// Deliver sends the briefing by email and, when configured, to Telegram.
// Returns true if at least one channel accepted it.
func (n *Notifier) Deliver(b models.Briefing, chart []byte) bool {
	sent := n.sendEmail(b, chart)
	if n.sendTelegram(b) {
		sent = true
	}
	return sent
}

func (n *Notifier) sendEmail(b models.Briefing, chart []byte) bool {
	if n.ResendKey == "" || n.To == "" {
		log.Println("notify: resend credentials not configured, skipping email")
		return false
	}

	html, err := FormatBriefingHTML(b)
	if err != nil {
		log.Printf("notify: failed to render briefing html: %v", err)
		return false
	}

	params := &resend.SendEmailRequest{
		From:    n.From,
		To:      []string{n.To},
		Subject: fmt.Sprintf("Portfolio Briefing — %s", b.Date),
		Html:    html,
		Text:    b.Content,
	}
	if len(chart) > 0 {
		params.Attachments = []*resend.Attachment{{
			Filename:    "portfolio_value.png",
			Content:     chart,
			ContentType: "image/png",
		}}
	}

	client := resend.NewClient(n.ResendKey)
	if _, err := client.Emails.Send(params); err != nil {
		log.Printf("notify: failed to send briefing email: %v", err)
		return false
	}
	log.Printf("notify: briefing email sent to %s", n.To)
	return true
}
