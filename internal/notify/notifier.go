package notify

import (
	"context"
	"fmt"
	"strings"

	"kraken_bot/internal/assets"
	"kraken_bot/internal/modules/config"
	krakensvc "kraken_bot/internal/modules/kraken_client/service"
	"kraken_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Telegram — пассивный нотифайер + одна команда /status.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	cfg    *config.Config
	kraken *krakensvc.Client
}

func NewTelegram(cfg *config.Config, kraken *krakensvc.Client) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: cfg.Telegram.ChatID,
		cfg:    cfg,
		kraken: kraken,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// /status — балансы и открытые ордера по торгуемой паре.
func (t *Telegram) handleStatus(ctx context.Context) {
	balances, err := t.kraken.Balance(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка получения баланса: %v", err)
		return
	}
	orders, err := t.kraken.OpenOrders(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка получения ордеров: %v", err)
		return
	}

	baseAsset, codes := assets.Resolve(t.cfg.Pair)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\n", t.cfg.Pair)
	fmt.Fprintf(&b, "Баланс: %.8f %s | $%.2f USD\n",
		assets.BalanceFor(balances, codes), baseAsset, assets.QuoteBalance(balances))

	count := 0
	for _, o := range orders {
		if o.Pair != t.cfg.Pair {
			continue
		}
		count++
		fmt.Fprintf(&b, "- %s %s %.8f @ %.4f ($%.2f)\n",
			strings.ToUpper(string(o.Side)), o.TxID, o.Volume, o.Price, o.Total())
	}
	if count == 0 {
		b.WriteString("📭 Открытых ордеров нет")
	}
	t.Send(b.String())
}

// Start: long-polling только ради /status.
func (t *Telegram) Start(ctx context.Context) {
	if t == nil || t.bot == nil {
		return
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	go t.consume(ctx, t.bot.GetUpdatesChan(u))
}

// consume читает апдейты до отмены контекста или закрытия канала.
// Stop() закрывает канал через StopReceivingUpdates — без проверки ok
// чтение из закрытого канала выродилось бы в busy-loop из нулевых значений.
func (t *Telegram) consume(ctx context.Context, updates tgbot.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			if upd.Message == nil || upd.Message.Chat == nil ||
				upd.Message.Chat.ID != t.chatID || !upd.Message.IsCommand() {
				continue
			}
			switch upd.Message.Command() {
			case "status":
				go t.handleStatus(ctx)
			}
		}
	}
}

func (t *Telegram) Stop() {
	if t != nil && t.bot != nil {
		t.bot.StopReceivingUpdates()
	}
}

// Stdout — заглушка, когда Telegram не сконфигурирован: всё в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { logger.Info(format, args...) }
