package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/lifeos/internal/config"
	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/pkg/conv"
	"github.com/sandevgo/lifeos/pkg/log"
)

// Notifier mirrors interaction results to the owner's Telegram chat. It is
// send-only; no poller runs and inbound messages are ignored.
type Notifier struct {
	bot     *tele.Bot
	ownerID int64
	logger  *zerolog.Logger
}

func NewNotifier(ctx context.Context, cfg *config.TelegramConfig) (*Notifier, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token: cfg.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Notifier{
		bot:     bot,
		ownerID: cfg.OwnerID,
		logger:  log.FromCtx(ctx),
	}, nil
}

// Broadcast sends a summary of one interaction. Delivery failures are logged
// and swallowed; Telegram being down must never fail a voice command.
func (n *Notifier) Broadcast(event core.ResponseEvent) {
	var b strings.Builder
	fmt.Fprintf(&b, "*You:* %s\n\n", event.Transcription)
	if event.VisionRequired && event.VisionResult != "" {
		fmt.Fprintf(&b, "*Seen:* %s\n\n", event.VisionResult)
	}
	fmt.Fprintf(&b, "*%s:* %s", core.AppName, event.FinalResponseText)

	html := conv.MarkdownToTelegramHTML([]byte(b.String()))

	if _, err := n.bot.Send(tele.ChatID(n.ownerID), html, tele.ModeHTML); err != nil {
		n.logger.Warn().Err(err).Msg("telegram notification failed")
	}
}
