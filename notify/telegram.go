package notify

import (
	"context"

	"domainwatch/telegram"
)

// TelegramChannel adapts the Telegram sender to the channel interface.
type TelegramChannel struct {
	Sender telegram.Sender
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Send(ctx context.Context, ev Event) error {
	return t.Sender.Send(ctx, ev.Text())
}
