// Package notify delivers operator-facing notifications. The webhook side of
// the system talks LINE; reports for the operator go out over Telegram,
// which keeps the admin channel separate from the customer channel.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	_, err := t.api.Send(msg)
	return err
}
