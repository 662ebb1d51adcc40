package alerts

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/monteroai/smiledental/internal/models"
)

// Notifier pushes matching postings to a Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Notifier{
		api:    api,
		chatID: chatID,
	}, nil
}

func (n *Notifier) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func (n *Notifier) SendJob(job models.Job) error {
	msgText := fmt.Sprintf("🦷 *%s*\n", n.escapeMarkdown(job.Title))
	msgText += fmt.Sprintf("🪪 %s\n", n.escapeMarkdown(string(job.JobType)))
	msgText += fmt.Sprintf("💰 $%s/hr\n", n.escapeMarkdown(fmt.Sprintf("%.2f", job.HourlyRate)))
	msgText += fmt.Sprintf("📍 %s\n", n.escapeMarkdown(job.LocationCity+", "+job.LocationState))
	msgText += fmt.Sprintf("📅 %s %s\n", n.escapeMarkdown(job.JobDate.Format("2006-01-02")),
		n.escapeMarkdown(job.StartTime+"-"+job.EndTime))

	if job.Description != "" {
		msgText += fmt.Sprintf("📄 %s\n", n.escapeMarkdown(job.Description))
	}

	if job.IsRecurring {
		msgText += fmt.Sprintf("🔁 %s\n", n.escapeMarkdown(string(job.RecurringPattern)))
	}

	msg := tgbotapi.NewMessage(n.chatID, msgText)
	msg.ParseMode = "MarkdownV2"

	_, err := n.api.Send(msg)
	return err
}

func (n *Notifier) SendError(err error) error {
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := n.api.Send(msg)
	return sendErr
}

func (n *Notifier) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(n.chatID, "ℹ️ "+message)
	_, err := n.api.Send(msg)
	return err
}
