// Package bot orchestrates one inbound chat message end to end: loading
// notice, profile fetch, in-place edit with the rendered result, and the
// profile picture send, degrading from MarkdownV2 to plain text at every
// delivery point.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazemely102/tikinfo/format"
	"github.com/hazemely102/tikinfo/markdown"
	"github.com/hazemely102/tikinfo/profile"
)

const welcomeText = "أهلاً بك! 👋\n" +
	"أرسل لي اسم مستخدم تيك توك (مثال: `@username` أو `username`) وسأجلب لك معلومات عنه.\n\n" +
	"مطور البوت: @MyTikInfoBot"

const (
	emptyInputText  = "الرجاء إرسال اسم مستخدم صالح."
	fatalNoticeText = "⚠️ حدث خطأ فادح أثناء محاولة بدء طلبك. يرجى المحاولة مرة أخرى لاحقًا."
)

// Messenger is the messaging transport the handler drives. Each call renders
// in MarkdownV2 when markup is true, plain text otherwise.
type Messenger interface {
	Reply(ctx context.Context, chatID int64, text string, markup bool) (messageID int, err error)
	Edit(ctx context.Context, chatID int64, messageID int, text string, markup bool) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, markup bool) error
	UploadingPhoto(ctx context.Context, chatID int64) error
}

// Fetcher retrieves a profile for a username.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (*profile.Profile, error)
}

// Handler processes inbound messages.
type Handler struct {
	messenger Messenger
	fetcher   Fetcher
	logger    *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// New creates a Handler.
func New(messenger Messenger, fetcher Fetcher, opts ...Option) *Handler {
	h := &Handler{messenger: messenger, fetcher: fetcher, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleMessage runs the full flow for one inbound text message. Every
// failure surfaces as a chat message rather than a silent drop; the returned
// error is non-nil only when not even a plain notice could be delivered.
func (h *Handler) HandleMessage(ctx context.Context, chatID int64, text string) error {
	input := strings.TrimSpace(text)
	if input == "" {
		_, err := h.messenger.Reply(ctx, chatID, emptyInputText, false)
		return err
	}
	if isStartCommand(input) {
		h.logger.InfoContext(ctx, "start command", "chat_id", chatID)
		_, err := h.messenger.Reply(ctx, chatID, welcomeText, false)
		return err
	}

	h.logger.InfoContext(ctx, "profile request", "chat_id", chatID, "input", input)

	loadingID, err := h.sendLoadingNotice(ctx, chatID, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "could not send even plain loading message", "error", err)
		_, notifyErr := h.messenger.Reply(ctx, chatID, fatalNoticeText, false)
		return notifyErr
	}

	p, fetchErr := h.fetcher.Fetch(ctx, input)
	var body string
	if fetchErr != nil {
		body = format.ErrorMessage(fetchErr)
	} else {
		body = format.Message(p)
	}

	h.deliver(ctx, "result edit",
		func(rendered string, markup bool) error {
			return h.messenger.Edit(ctx, chatID, loadingID, rendered, markup)
		},
		func(rendered string) {
			if _, err := h.messenger.Reply(ctx, chatID, rendered, false); err != nil {
				h.logger.ErrorContext(ctx, "result delivery failed entirely", "error", err)
			}
		},
		body)

	if fetchErr == nil && p.ProfilePicture != "" {
		h.sendProfilePhoto(ctx, chatID, p)
	}
	return nil
}

// sendLoadingNotice sends the "fetching…" message, markup first, plain on
// failure. It returns the message ID so the result can be edited in place.
func (h *Handler) sendLoadingNotice(ctx context.Context, chatID int64, input string) (int, error) {
	loadingMarkup := fmt.Sprintf("⏳ جاري جلب المعلومات لـ '%s'\\.\\.\\.", markdown.Escape(input))
	id, err := h.messenger.Reply(ctx, chatID, loadingMarkup, true)
	if err == nil {
		return id, nil
	}
	h.logger.ErrorContext(ctx, "markdown loading message failed, trying plain", "error", err)
	return h.messenger.Reply(ctx, chatID, fmt.Sprintf("⏳ جاري جلب المعلومات لـ '%s'...", input), false)
}

// deliver is the shared three-tier degradation: the markup rendering first,
// then the plain transform of it through the same operation, then lastResort
// with the plain text.
func (h *Handler) deliver(ctx context.Context, op string, send func(rendered string, markup bool) error, lastResort func(plain string), body string) {
	err := send(body, true)
	if err == nil {
		return
	}
	h.logger.ErrorContext(ctx, "markdown delivery failed, falling back to plain", "op", op, "error", err)

	plain := markdown.ToPlain(body)
	if err := send(plain, false); err != nil {
		h.logger.ErrorContext(ctx, "plain delivery failed", "op", op, "error", err)
		lastResort(plain)
	}
}

// sendProfilePhoto sends the profile picture with a caption, degrading from a
// markup caption to a plain one, and finally to a text notice naming the
// failed caption.
func (h *Handler) sendProfilePhoto(ctx context.Context, chatID int64, p *profile.Profile) {
	captionMarkup, captionPlain := format.PhotoCaption(p.Username)

	if err := h.messenger.UploadingPhoto(ctx, chatID); err != nil {
		h.logger.DebugContext(ctx, "chat action failed", "error", err)
	}

	err := h.messenger.SendPhoto(ctx, chatID, p.ProfilePicture, captionMarkup, true)
	if err == nil {
		return
	}
	h.logger.WarnContext(ctx, "photo with markdown caption failed, retrying plain", "error", err)

	if err := h.messenger.SendPhoto(ctx, chatID, p.ProfilePicture, captionPlain, false); err != nil {
		h.logger.ErrorContext(ctx, "photo with plain caption failed", "error", err)
		if _, err := h.messenger.Reply(ctx, chatID, "❌ فشل في إرسال الصورة. التعليق: "+captionPlain, false); err != nil {
			h.logger.ErrorContext(ctx, "photo failure notice failed", "error", err)
		}
	}
}

func isStartCommand(input string) bool {
	return input == "/start" || strings.HasPrefix(input, "/start ") || strings.HasPrefix(input, "/start@")
}
