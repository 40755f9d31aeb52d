package notify

import "context"

// NopNotifier discards alerts. Used when the Telegram channel is disabled so
// the pipeline keeps firing and recording without a live bot.
type NopNotifier struct{}

// SendAlert discards the message.
func (NopNotifier) SendAlert(context.Context, string) error { return nil }
