package telegram

import (
	"errors"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}, true},
		{"server error", &tgbotapi.Error{Code: 502, Message: "Bad Gateway"}, true},
		{"bad markup", &tgbotapi.Error{Code: 400, Message: "Bad Request: can't parse entities"}, false},
		{"forbidden", &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked"}, false},
		{"wrapped api error", fmt.Errorf("send message: %w", &tgbotapi.Error{Code: 400, Message: "Bad Request"}), false},
		{"network error", errors.New("connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isRetryableError(tt.err)
			if got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
