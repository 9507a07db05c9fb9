// Package profile defines the result types for TikTok profile extraction.
package profile

import "errors"

// NotFound is the placeholder substituted whenever a field's extraction
// pattern fails to match. Every string field of Profile carries either a real
// value or this sentinel, so consumers never need a presence check.
const NotFound = "❌ غير موجود"

// Classification errors for failed fetches. Fetch errors wrap one of these so
// callers can distinguish the cases while the wrapped message stays
// user-presentable.
var (
	// ErrTransport means the page could not be fetched at all (connection,
	// timeout, DNS, TLS, or a non-2xx status).
	ErrTransport = errors.New("fetch failed")
	// ErrNotFound means the page loaded but reports that the account does
	// not exist or is unavailable.
	ErrNotFound = errors.New("account not found")
	// ErrUnparseable means the page loaded but the identifier marker is
	// missing: the page structure changed or access was blocked.
	ErrUnparseable = errors.New("page not parseable")
)

// FetchError is the failure outcome of a fetch. Message is shown to the user
// verbatim; Kind carries the classification for errors.Is checks and logging.
type FetchError struct {
	Kind    error
	Message string
}

func (e *FetchError) Error() string { return e.Message }

// Unwrap exposes the classification sentinel.
func (e *FetchError) Unwrap() error { return e.Kind }

// Profile is the structured result of extracting a TikTok profile page.
//
// A Profile and a fetch error never coexist: Client.Fetch returns either a
// fully populated Profile or an error. Fields that could not be extracted hold
// their documented fallback (NotFound, 0, false) rather than being absent.
// ProfilePicture is the one truly optional field; empty means no picture.
type Profile struct {
	Username       string   `json:"username"`
	FullName       string   `json:"full_name"`
	Followers      int      `json:"followers"`
	Following      int      `json:"following"`
	Likes          int      `json:"likes"`
	Videos         int      `json:"videos"`
	Region         string   `json:"region"`
	Language       string   `json:"language"`
	Bio            string   `json:"bio"`
	Verified       bool     `json:"verified"`
	PrivateAccount bool     `json:"private_account"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	ProfileURL     string   `json:"profile_url"`
	SocialLinks    []string `json:"social_links"`
}
