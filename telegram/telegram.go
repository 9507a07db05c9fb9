// Package telegram is the Bot API transport: sending, editing, and photo
// delivery with MarkdownV2 or plain rendering per call.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the Telegram Bot API client. Transient API failures (429, 5xx,
// network errors) are retried once; 4xx responses, including MarkdownV2 parse
// rejections, are permanent so the caller's degradation logic sees them
// immediately.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates a Telegram client authenticated by the bot token.
func New(token string, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot api client creation failed: %w", err)
	}
	cfg.logger.Info("telegram client created", "bot", api.Self.UserName)

	return &Client{api: api, logger: cfg.logger}, nil
}

// Reply sends a new message to the chat and returns its message ID. Web page
// previews are disabled on all text sends.
func (c *Client) Reply(ctx context.Context, chatID int64, text string, markup bool) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if markup {
		msg.ParseMode = tgbotapi.ModeMarkdownV2
	}

	var sent tgbotapi.Message
	err := c.do(ctx, "send", func() error {
		var sendErr error
		sent, sendErr = c.api.Send(msg)
		return sendErr
	})
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

// Edit replaces the text of an existing message in place.
func (c *Client) Edit(ctx context.Context, chatID int64, messageID int, text string, markup bool) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.DisableWebPagePreview = true
	if markup {
		edit.ParseMode = tgbotapi.ModeMarkdownV2
	}

	err := c.do(ctx, "edit", func() error {
		_, sendErr := c.api.Send(edit)
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

// SendPhoto sends a photo by URL with a caption.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, markup bool) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	if markup {
		photo.ParseMode = tgbotapi.ModeMarkdownV2
	}

	err := c.do(ctx, "photo", func() error {
		_, sendErr := c.api.Send(photo)
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

// UploadingPhoto shows the "uploading a photo" chat action.
func (c *Client) UploadingPhoto(ctx context.Context, chatID int64) error {
	err := c.do(ctx, "chat action", func() error {
		_, sendErr := c.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadPhoto))
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("send chat action: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op string, call func() error) error {
	return retry.Do(call,
		retry.Context(ctx),
		retry.Attempts(2), // single retry
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying telegram call", "op", op, "attempt", n+1, "error", err)
		}),
	)
}

// isRetryableError returns true for transient Bot API failures. 4xx errors
// (bad markup, bad chat ID) are permanent.
func isRetryableError(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	// Network errors, timeouts, etc. are retryable.
	return true
}
