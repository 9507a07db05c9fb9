// Package tiktok fetches public TikTok profile pages and extracts a
// structured profile record from the JSON data embedded in the page markup.
package tiktok

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hazemely102/tikinfo/country"
	"github.com/hazemely102/tikinfo/profile"
)

const (
	profileURLPrefix = "https://www.tiktok.com/@"
	fetchTimeout     = 15 * time.Second

	// userAgent matches Chrome 124 on Windows. Anonymous requests with a
	// desktop browser User-Agent receive the full hydration payload.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// identifierMarker proves the page carries profile data for an existing
	// account and that the embedded JSON layout is the expected one.
	identifierMarker = `"uniqueId":"`
)

// notFoundMarkers appear in the page body when the account does not exist.
var notFoundMarkers = []string{"Couldn't find this account", "User not found"}

// Client fetches and parses TikTok profiles.
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	countryName func(code string) string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	httpClient  *http.Client
	logger      *slog.Logger
	countryName func(code string) string
}

// WithHTTPClient sets a custom HTTP client. The default uses the fixed
// 15-second fetch timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) { c.httpClient = httpClient }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCountryLookup sets the function that resolves a two-letter region code
// to a display name. The default is country.Name.
func WithCountryLookup(lookup func(code string) string) Option {
	return func(c *config) { c.countryName = lookup }
}

// New creates a TikTok client. No authentication is used; profile pages are
// fetched anonymously.
func New(opts ...Option) *Client {
	cfg := &config{
		httpClient:  &http.Client{Timeout: fetchTimeout},
		logger:      slog.Default(),
		countryName: country.Name,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{
		httpClient:  cfg.httpClient,
		logger:      cfg.logger,
		countryName: cfg.countryName,
	}
}

// Fetch retrieves and extracts the profile for a username ("user" or "@user").
// A single request is made; there is no retry at this layer. On failure the
// returned error is a *profile.FetchError whose message is user-presentable.
func (c *Client) Fetch(ctx context.Context, username string) (*profile.Profile, error) {
	user := strings.TrimPrefix(username, "@")
	profileURL := profileURLPrefix + user

	c.logger.InfoContext(ctx, "fetching tiktok profile", "url", profileURL, "username", user)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, http.NoBody)
	if err != nil {
		return nil, transportError(user, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "page fetch failed", "username", user, "error", err)
		return nil, transportError(user, err)
	}
	defer resp.Body.Close() //nolint:errcheck // intentional

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "page fetch failed", "username", user, "status", resp.StatusCode)
		return nil, transportError(user, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "page read failed", "username", user, "error", err)
		return nil, transportError(user, err)
	}

	content := string(body)
	if err := c.classify(ctx, content, user); err != nil {
		return nil, err
	}

	return c.parseProfile(ctx, content, profileURL), nil
}

// classify checks that the page carries the identifier marker, distinguishing
// "account not found" from "page layout changed or access blocked".
func (c *Client) classify(ctx context.Context, content, user string) error {
	if strings.Contains(content, identifierMarker) {
		return nil
	}
	for _, marker := range notFoundMarkers {
		if strings.Contains(content, marker) {
			return &profile.FetchError{
				Kind:    profile.ErrNotFound,
				Message: fmt.Sprintf("الحساب '%s' غير موجود أو غير متاح.", user),
			}
		}
	}
	// Warn-level: a persistent stream of these means the extraction
	// patterns have gone stale.
	c.logger.WarnContext(ctx, "could not extract basic info; page structure may have changed or access is blocked",
		"username", user)
	return &profile.FetchError{
		Kind:    profile.ErrUnparseable,
		Message: fmt.Sprintf("لم يتمكن من استخراج المعلومات الأساسية لـ '%s'. قد يكون هيكل الصفحة قد تغير أو تم حظر الوصول.", user),
	}
}

func transportError(user string, err error) *profile.FetchError {
	return &profile.FetchError{
		Kind:    profile.ErrTransport,
		Message: fmt.Sprintf("فشل في جلب الصفحة لـ '%s'. الخطأ: %v", user, err),
	}
}
