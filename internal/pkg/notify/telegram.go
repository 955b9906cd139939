package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// Min interval between messages to the same chat to stay clear of the
// Telegram rate limit (~30/min).
const sendInterval = 2 * time.Second

// TelegramNotifier pushes fully-corroborated fixtures to a chat. Safe to
// use as a nil pointer: every method becomes a no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyConfirmed sends one message listing the fixtures every queried
// source agreed on. Does nothing when no fixture reached full confidence.
func (n *TelegramNotifier) NotifyConfirmed(report *models.Report) {
	if n == nil || report == nil {
		return
	}

	var confirmed []models.VerifiedEvent
	for _, r := range report.Results {
		if r.Confidence >= 1.0 {
			confirmed = append(confirmed, r)
		}
	}
	if len(confirmed) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("✅ %d fixture(s) confirmed by all sources:\n", len(confirmed)))
	for _, ev := range confirmed {
		when := "time unknown"
		if ev.Kickoff != nil {
			when = ev.Kickoff.UTC().Format("02.01.2006 15:04")
		}
		b.WriteString(fmt.Sprintf("• %s (%s, %s)\n", ev.Match, ev.League, when))
	}

	n.send(b.String())
}

func (n *TelegramNotifier) send(text string) {
	n.mu.Lock()
	if wait := sendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram message", "error", err)
	}
}
