// Package telegram exposes the bot over Telegram long polling. Each chat
// gets its own conversation session, so memory never leaks between chats.
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/service/bot"
	"github.com/sparrowbot/sparrowbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	sparrow *bot.Bot
	router  core.CmdRouter
	sender  *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	sparrow *bot.Bot,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	tb := &Bot{
		bot:     b,
		sparrow: sparrow,
		router:  router,
		sender:  newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: restrict to the owner when one is configured
	if cfg.OwnerID != 0 {
		b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
			return func(c tele.Context) error {
				if c.Sender().ID != cfg.OwnerID {
					return nil // Ignore unauthorized users
				}
				return next(c)
			}
		})
	}

	b.Handle("/start", tb.handleStart)
	b.Handle(tele.OnText, tb.handleText)

	return tb, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Bool("online", b.sparrow.Online()).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	session := b.sparrow.Session(sessionID(c))

	greeting := session.Chat(ctx, "Hello!")
	return b.sender.sendMarkdown(ctx, c.Chat(), greeting)
}

// handleText receives plain messages and unregistered slash commands alike;
// the router strips the slash, so /help and /reset work without their own
// telebot endpoints.
func (b *Bot) handleText(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	id := sessionID(c)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	if reply, consumed := b.router.Execute(ctx, id, c.Text()); consumed {
		return c.Send(reply)
	}

	response := b.sparrow.Session(id).Chat(ctx, c.Text())
	if err := b.sender.sendMarkdown(ctx, c.Chat(), response); err != nil {
		logger.Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to send reply")
		return err
	}
	return nil
}

func sessionID(c tele.Context) string {
	return fmt.Sprintf("telegram-%d", c.Chat().ID)
}
