package tiktok

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/hazemely102/tikinfo/profile"
)

// Field extraction patterns. Each targets one key of the JSON blobs embedded
// in the profile page markup.
var (
	usernamePattern  = regexp.MustCompile(`"uniqueId":"(.*?)"`)
	nicknamePattern  = regexp.MustCompile(`"nickname":"(.*?)"`)
	followersPattern = regexp.MustCompile(`"followerCount":(\d+)`)
	followingPattern = regexp.MustCompile(`"followingCount":(\d+)`)
	likesPattern     = regexp.MustCompile(`"heartCount":(\d+)`)
	videosPattern    = regexp.MustCompile(`"videoCount":(\d+)`)
	regionPattern    = regexp.MustCompile(`"region":"(.*?)"`)
	languagePattern  = regexp.MustCompile(`"language":"(.*?)"`)
	avatarPattern    = regexp.MustCompile(`"avatarLarger":"(.*?)"`)
	signaturePattern = regexp.MustCompile(`"signature":"(.*?)"`)
	verifiedPattern  = regexp.MustCompile(`"verified":(true|false)`)
	privatePattern   = regexp.MustCompile(`"privateAccount":(true|false)`)
)

// stringRule is one declarative extraction rule for a text field: which
// pattern to apply, whether the first or the last occurrence wins, how to
// decode the captured group, and what to substitute when nothing matches.
type stringRule struct {
	pattern  *regexp.Regexp
	last     bool
	decode   func(string) string
	fallback string
}

// The page embeds region and language several times; the trailing copy tracks
// the profile rather than the viewer, so those rules take the last occurrence.
var stringRules = map[string]stringRule{
	"username":  {pattern: usernamePattern},
	"full_name": {pattern: nicknamePattern, decode: decodeEscapes, fallback: profile.NotFound},
	"region":    {pattern: regionPattern, last: true},
	"language":  {pattern: languagePattern, last: true, fallback: profile.NotFound},
	"avatar":    {pattern: avatarPattern, decode: unescapeSlashes},
	"bio":       {pattern: signaturePattern, decode: decodeBio, fallback: profile.NotFound},
}

// apply runs one rule against the page text. Total: a failed match yields the
// rule's fallback.
func (r stringRule) apply(content string) string {
	var captured string
	if r.last {
		matches := r.pattern.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			return r.fallback
		}
		captured = matches[len(matches)-1][1]
	} else {
		m := r.pattern.FindStringSubmatch(content)
		if m == nil {
			return r.fallback
		}
		captured = m[1]
	}
	if r.decode != nil {
		return r.decode(captured)
	}
	return captured
}

func intField(pattern *regexp.Regexp, content string) int {
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func boolField(pattern *regexp.Regexp, content string) bool {
	m := pattern.FindStringSubmatch(content)
	return m != nil && m[1] == "true"
}

// parseProfile extracts every profile field from the raw page text. It is
// total over any input: missing or malformed fields degrade to their
// documented fallbacks and never fail the call.
func (c *Client) parseProfile(ctx context.Context, content, profileURL string) *profile.Profile {
	p := &profile.Profile{
		Username:       stringRules["username"].apply(content),
		FullName:       stringRules["full_name"].apply(content),
		Followers:      intField(followersPattern, content),
		Following:      intField(followingPattern, content),
		Likes:          intField(likesPattern, content),
		Videos:         intField(videosPattern, content),
		Language:       stringRules["language"].apply(content),
		Bio:            stringRules["bio"].apply(content),
		Verified:       boolField(verifiedPattern, content),
		PrivateAccount: boolField(privatePattern, content),
		ProfilePicture: stringRules["avatar"].apply(content),
		ProfileURL:     profileURL,
	}

	if code := stringRules["region"].apply(content); code != "" {
		p.Region = c.countryName(code)
	} else {
		p.Region = profile.NotFound
	}

	bio := p.Bio
	if bio == profile.NotFound {
		bio = ""
	}
	p.SocialLinks = extractLinks(content, bio)

	c.logger.InfoContext(ctx, "tiktok profile parsed",
		"username", p.Username,
		"followers", p.Followers,
		"social_links", len(p.SocialLinks))

	return p
}

// decodeEscapes decodes JSON-style escape sequences (\uXXXX, \n, \t) in a
// captured fragment. On any invalid sequence it falls back to the simple
// slash-and-newline unescape.
func decodeEscapes(s string) string {
	if decoded, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return decoded
	}
	return simpleUnescape(s)
}

// decodeBio decodes the signature field: full escape decoding with literal
// \n sequences becoming real line breaks.
func decodeBio(s string) string {
	return strings.ReplaceAll(decodeEscapes(s), `\n`, "\n")
}

func simpleUnescape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	return unescapeSlashes(s)
}

// unescapeSlashes undoes the \u002F slash escaping used in the embedded JSON.
func unescapeSlashes(s string) string {
	return strings.ReplaceAll(s, `\u002F`, "/")
}
