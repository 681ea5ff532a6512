package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/model"
)

// StatsProvider is implemented by service.AdminService.
type StatsProvider interface {
	Stats(ctx context.Context) (*model.AdminStats, error)
}

// Bot posts purchase notifications to the ops chat and answers a few
// read-only commands there.
type Bot struct {
	bot    *tele.Bot
	chatID int64
	stats  StatsProvider
	log    *slog.Logger
}

func NewBot(cfg config.TelegramConfig, log *slog.Logger) (*Bot, error) {
	return newBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 60 * time.Second},
	}, cfg.ChatID, log)
}

func newBot(pref tele.Settings, chatID int64, log *slog.Logger) (*Bot, error) {
	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:    bot,
		chatID: chatID,
		log:    log.With("component", "telegram"),
	}

	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/stats", b.handleStats)
	b.bot.Handle("/help", b.handleHelp)
}

// SetStatsProvider enables the /stats command.
func (b *Bot) SetStatsProvider(stats StatsProvider) {
	b.stats = stats
}

func (b *Bot) StartPolling(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.bot.Start()
}

func (b *Bot) SendMessage(text string) error {
	_, err := b.bot.Send(tele.ChatID(b.chatID), text, tele.ModeHTML)
	return err
}

// SendPurchase reports a completed token purchase.
func (b *Bot) SendPurchase(order *model.PaymentOrder, newBalance int64) error {
	return b.SendMessage(purchaseMessage(order, newBalance))
}

func (b *Bot) handleStats(c tele.Context) error {
	if c.Chat() == nil || c.Chat().ID != b.chatID {
		return nil
	}
	if b.stats == nil {
		return c.Send("Stats are not available.")
	}

	stats, err := b.stats.Stats(context.Background())
	if err != nil {
		b.log.Error("failed to load stats", "err", err)
		return c.Send("Failed to load stats.")
	}

	return c.Send(statsMessage(stats), tele.ModeHTML)
}

func (b *Bot) handleHelp(c tele.Context) error {
	if c.Chat() == nil || c.Chat().ID != b.chatID {
		return nil
	}
	return c.Send("/stats: users, purchases and AI usage totals")
}

func purchaseMessage(order *model.PaymentOrder, newBalance int64) string {
	pkg := order.PackageID
	if p, ok := model.LookupTokenPackage(order.PackageID); ok {
		pkg = p.Label
	}
	return fmt.Sprintf(`💰 <b>Token purchase</b>

Package: %s
Amount: %s %s
Tokens: +%d
New balance: %d
User: <code>%s</code>
Order: <code>%s</code>`,
		pkg,
		formatMinor(order.Amount), order.Currency,
		order.Tokens,
		newBalance,
		order.UserID,
		order.ProviderOrderID,
	)
}

func statsMessage(s *model.AdminStats) string {
	return fmt.Sprintf(`📊 <b>GitTool stats</b>

Users: %d
Paid orders: %d
Tokens sold: %d
READMEs generated: %d
Chat edits: %d
Saved READMEs: %d`,
		s.TotalUsers, s.PaidOrders, s.TokensSold, s.Generations, s.ChatEdits, s.SavedReadmes)
}

func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
