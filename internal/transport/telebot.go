// Package transport adapts the outbound messaging collaborator onto the
// Bot API via telebot.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coretelegram "github.com/m3rciful/identbot/core/telegram"
	"github.com/m3rciful/identbot/internal/engine"
)

var tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)

// Telegram sends, edits and deletes chat messages through a bot account.
type Telegram struct {
	bot   *tele.Bot
	httpc *http.Client
	token string
}

// New builds the adapter. The constructor verifies the token against the
// Bot API, so a bad token fails at startup rather than on first send.
func New(token string) (*Telegram, error) {
	httpc := coretelegram.BuildHTTPClient()
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: httpc,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: bot initialization failed: %w", redact(err))
	}
	return &Telegram{bot: bot, httpc: httpc, token: token}, nil
}

// Send posts a new Markdown message and returns its id.
func (t *Telegram) Send(_ context.Context, chatID int64, text string, kb engine.Keyboard) (int, error) {
	msg, err := t.bot.Send(&tele.Chat{ID: chatID}, text, sendOptions(kb))
	if err != nil {
		return 0, redact(err)
	}
	return msg.ID, nil
}

// Edit rewrites an existing message in place.
func (t *Telegram) Edit(_ context.Context, chatID int64, messageID int, text string, kb engine.Keyboard) error {
	_, err := t.bot.Edit(stored(chatID, messageID), text, sendOptions(kb))
	return redact(err)
}

// Delete removes a message.
func (t *Telegram) Delete(_ context.Context, chatID int64, messageID int) error {
	return redact(t.bot.Delete(stored(chatID, messageID)))
}

// Ack answers a callback query so the client stops its spinner.
func (t *Telegram) Ack(_ context.Context, callbackID string) error {
	return redact(t.bot.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{}))
}

// RegisterWebhook points the Bot API at our public endpoint. telebot
// only registers webhooks from its own poller loop, so this goes through
// a raw API call instead.
func (t *Telegram) RegisterWebhook(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fmt.Errorf("transport: empty webhook url")
	}
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/setWebhook", t.token)
	body := url.Values{"url": {publicURL}}.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return redact(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpc.Do(req)
	if err != nil {
		return redact(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("transport: setWebhook status: %s", resp.Status)
	}
	return nil
}

func stored(chatID int64, messageID int) tele.StoredMessage {
	return tele.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)}
}

func sendOptions(kb engine.Keyboard) *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:   tele.ModeMarkdown,
		ReplyMarkup: toMarkup(kb),
	}
}

// toMarkup converts the engine's transport-neutral keyboard into inline
// buttons. Data is sent verbatim so incoming callbacks round-trip the
// exact tokens the engine emitted.
func toMarkup(kb engine.Keyboard) *tele.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]tele.InlineButton, 0, len(kb))
	for _, row := range kb {
		r := make([]tele.InlineButton, 0, len(row))
		for _, btn := range row {
			r = append(r, tele.InlineButton{Text: btn.Text, Data: btn.Data})
		}
		rows = append(rows, r)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// redact prevents accidental leakage of the bot token through API error
// messages.
func redact(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	cleaned := tokenRe.ReplaceAllString(msg, "bot<redacted>")
	if cleaned == msg {
		return err
	}
	return fmt.Errorf("%s", cleaned)
}
