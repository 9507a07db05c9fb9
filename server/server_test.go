package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hazemely102/tikinfo/bot"
	"github.com/hazemely102/tikinfo/dedup"
	"github.com/hazemely102/tikinfo/profile"
)

type quietMessenger struct {
	failAll bool
}

func (m *quietMessenger) Reply(context.Context, int64, string, bool) (int, error) {
	if m.failAll {
		return 0, errors.New("telegram refused")
	}
	return 1, nil
}

func (m *quietMessenger) Edit(context.Context, int64, int, string, bool) error {
	if m.failAll {
		return errors.New("telegram refused")
	}
	return nil
}

func (m *quietMessenger) SendPhoto(context.Context, int64, string, string, bool) error {
	return nil
}

func (m *quietMessenger) UploadingPhoto(context.Context, int64) error { return nil }

type countingFetcher struct {
	fetched []string
}

func (f *countingFetcher) Fetch(_ context.Context, username string) (*profile.Profile, error) {
	f.fetched = append(f.fetched, username)
	return &profile.Profile{Username: username, ProfileURL: "https://www.tiktok.com/@" + username}, nil
}

func newTestServer(t *testing.T, messenger bot.Messenger, fetcher bot.Fetcher, opts ...Option) http.Handler {
	t.Helper()
	return New(bot.New(messenger, fetcher), opts...).Router()
}

func TestHealth(t *testing.T) {
	router := newTestServer(t, &quietMessenger{}, &countingFetcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != healthText {
		t.Errorf("body = %q, want %q", got, healthText)
	}
}

func TestWebhook(t *testing.T) {
	fetcher := &countingFetcher{}
	router := newTestServer(t, &quietMessenger{}, fetcher)

	body := `{"update_id":1,"message":{"message_id":10,"chat":{"id":5},"text":"testuser"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "OK" {
		t.Errorf("body = %q, want %q", got, "OK")
	}
	if len(fetcher.fetched) != 1 || fetcher.fetched[0] != "testuser" {
		t.Errorf("fetched = %v, want the message text", fetcher.fetched)
	}
}

func TestWebhookMalformedPayload(t *testing.T) {
	router := newTestServer(t, &quietMessenger{}, &countingFetcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json")))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestWebhookNonMessageUpdate(t *testing.T) {
	fetcher := &countingFetcher{}
	router := newTestServer(t, &quietMessenger{}, fetcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"update_id":2}`)))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(fetcher.fetched) != 0 {
		t.Errorf("fetched = %v, want no fetch for a non-message update", fetcher.fetched)
	}
}

func TestWebhookDeliveryFailure(t *testing.T) {
	router := newTestServer(t, &quietMessenger{failAll: true}, &countingFetcher{})

	// A blank-but-present text exercises the handler, whose replies all fail.
	body := `{"update_id":3,"message":{"message_id":11,"chat":{"id":5},"text":" "}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestWebhookDeduplicatesUpdates(t *testing.T) {
	seen, err := dedup.NewWithPath(time.Hour, t.TempDir())
	if err != nil {
		t.Fatalf("NewWithPath() error = %v", err)
	}
	defer seen.Close() //nolint:errcheck // test cleanup

	fetcher := &countingFetcher{}
	router := newTestServer(t, &quietMessenger{}, fetcher, WithDedup(seen))

	body := `{"update_id":4,"message":{"message_id":12,"chat":{"id":5},"text":"testuser"}}`
	for range 2 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	}

	if len(fetcher.fetched) != 1 {
		t.Errorf("fetched %d times, want the duplicate update skipped", len(fetcher.fetched))
	}
}
