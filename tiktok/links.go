package tiktok

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Link extraction patterns.
var (
	// directLinkPattern finds URL-looking tokens written literally in bio text.
	directLinkPattern = regexp.MustCompile(`(https?://[^\s'"<>]+|www\.[^\s'"<>]+)`)

	// bioLinkFieldPattern finds the structured bioLink field in the page JSON.
	bioLinkFieldPattern = regexp.MustCompile(`"bioLink":\s*\{\s*"link":\s*"([^"]+)"`)

	// redirectLinkPattern finds tiktok.com/link/v2 wrappers whose target
	// query parameter carries the URL-encoded destination.
	redirectLinkPattern = regexp.MustCompile(`href="(https://www\.tiktok\.com/link/v2\?[^"]*?target=([^"&]+))"`)

	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// handlePatterns are the fixed platform-handle heuristics, applied in this
// exact order against the bio text. A marker token (ig, sc, yt, fb, ...)
// followed by an optional @ and a handle. The handle is always the last
// capture group.
var handlePatterns = []struct {
	platform string
	pattern  *regexp.Regexp
}{
	{"Instagram", regexp.MustCompile(`\b[iI][gG]\b[\s:]*@?([a-zA-Z0-9._]+)`)},
	{"Snapchat", regexp.MustCompile(`\b([sS][cC]|[sS]napchat)\b[\s:]*@?([a-zA-Z0-9._]+)`)},
	{"Twitter/X", regexp.MustCompile(`\b([tT]witter|[xX])\b[\s:]*@?([a-zA-Z0-9._]+)`)},
	{"YouTube", regexp.MustCompile(`\b([yY][tT]|[yY]outube)\b[\s:]*@?([a-zA-Z0-9._]+)`)},
	{"Telegram", regexp.MustCompile(`\b[tT]elegram\b[\s:]*@?([a-zA-Z0-9._]+)`)},
	{"Facebook", regexp.MustCompile(`\b[fF][bB]\b[\s:]*@?([a-zA-Z0-9._]+)`)},
}

// containsAny reports whether candidate is a substring of any existing entry.
// This is the shared dedup policy for every extraction pass: containment, not
// equality, checked at insert time only. The check is one-way: a longer
// candidate is NOT suppressed by a shorter existing entry, so insertion order
// decides which duplicate survives.
func containsAny(entries []string, candidate string) bool {
	for _, e := range entries {
		if strings.Contains(e, candidate) {
			return true
		}
	}
	return false
}

// extractLinks collects social and contact annotations from the bio text and
// the raw page text. Five passes run in fixed order, each appending to one
// list under the containsAny dedup policy; within a pass, matches append in
// text-scan order.
func extractLinks(content, bio string) []string {
	var links []string

	// 1. Direct URLs written in the bio.
	for _, link := range directLinkPattern.FindAllString(bio, -1) {
		if !containsAny(links, link) {
			links = append(links, "🔗 من البايو: "+link)
		}
	}

	// 2. The structured bioLink field from the page JSON.
	for _, m := range bioLinkFieldPattern.FindAllStringSubmatch(content, -1) {
		link := unescapeSlashes(m[1])
		if !containsAny(links, link) {
			links = append(links, "🔗 رابط البايو: "+link)
		}
	}

	// 3. Redirect-wrapper links in the page markup.
	for _, m := range redirectLinkPattern.FindAllStringSubmatch(content, -1) {
		fullURL, target := m[1], m[2]
		decoded, err := url.QueryUnescape(target)
		if err != nil {
			decoded = target
		}
		label := redirectLabel(content, fullURL)
		if label == "" {
			label = decoded
		}
		if !containsAny(links, decoded) {
			links = append(links, fmt.Sprintf("🔗 %s: %s", label, decoded))
		}
	}

	// 4. Platform handles in the bio, first match per platform only.
	for _, hp := range handlePatterns {
		m := hp.pattern.FindStringSubmatch(bio)
		if m == nil {
			continue
		}
		handle := m[len(m)-1]
		if !containsAny(links, handle) {
			links = append(links, fmt.Sprintf("📱 %s: %s", hp.platform, handle))
		}
	}

	// 5. One email address, first match only.
	if email := emailPattern.FindString(bio); email != "" && !containsAny(links, email) {
		links = append(links, "📧 ايميل: "+email)
	}

	return links
}

// redirectLabel extracts the display text adjacent to a redirect-wrapper
// anchor, if the nearby markup carries one.
func redirectLabel(content, fullURL string) string {
	pattern, err := regexp.Compile(`(?s)href="` + regexp.QuoteMeta(fullURL) + `"[^>]*>.*?<span[^>]*>([^<]+)</span>`)
	if err != nil {
		return ""
	}
	if m := pattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
