package tiktok

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// The direct-link pass runs before the handle and email passes, and an email
// that happens to contain an earlier handle must not be suppressed.
func TestExtractLinksPassOrder(t *testing.T) {
	bio := "Reach me ig: jdoe or email jdoe@example.com https://t.co/x"
	got := extractLinks("", bio)

	want := []string{
		"🔗 من البايو: https://t.co/x",
		"📱 Instagram: jdoe",
		"📧 ايميل: jdoe@example.com",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extractLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLinksBioLinkField(t *testing.T) {
	content := `{"bioLink":{"link":"https://mysite.example"},"risk":0}`
	got := extractLinks(content, "")

	want := []string{"🔗 رابط البايو: https://mysite.example"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extractLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLinksRedirectWrapper(t *testing.T) {
	content := `<a href="https://www.tiktok.com/link/v2?aid=1&target=https%3A%2F%2Flinktr.ee%2Fjdoe" class="l"><span class="t">linktr.ee/jdoe</span></a>`
	got := extractLinks(content, "")

	want := []string{"🔗 linktr.ee/jdoe: https://linktr.ee/jdoe"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extractLinks() mismatch (-want +got):\n%s", diff)
	}
}

// A redirect wrapper without adjacent display text is labeled with the
// decoded destination itself.
func TestExtractLinksRedirectWithoutLabel(t *testing.T) {
	content := `<a href="https://www.tiktok.com/link/v2?target=https%3A%2F%2Fexample.net">go</a>`
	got := extractLinks(content, "")

	want := []string{"🔗 https://example.net: https://example.net"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extractLinks() mismatch (-want +got):\n%s", diff)
	}
}

// A later candidate contained in an earlier entry is dropped; insertion order
// decides which duplicate survives.
func TestExtractLinksDedup(t *testing.T) {
	bio := "my page: www.site.com/page"
	content := `{"bioLink":{"link":"www.site.com"}}`
	got := extractLinks(content, bio)

	want := []string{"🔗 من البايو: www.site.com/page"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extractLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLinksHandles(t *testing.T) {
	tests := []struct {
		name string
		bio  string
		want []string
	}{
		{
			"instagram with at sign",
			"ig @cool_user",
			[]string{"📱 Instagram: cool_user"},
		},
		{
			"snapchat long form",
			"Snapchat: snapper.1",
			[]string{"📱 Snapchat: snapper.1"},
		},
		{
			"x shorthand",
			"x @jdoe",
			[]string{"📱 Twitter/X: jdoe"},
		},
		{
			"youtube shorthand",
			"yt mychannel",
			[]string{"📱 YouTube: mychannel"},
		},
		{
			"facebook shorthand",
			"fb: some.page",
			[]string{"📱 Facebook: some.page"},
		},
		{
			"marker inside a word does not fire",
			"visit www.example.com and relax",
			[]string{"🔗 من البايو: www.example.com"},
		},
		{
			"first match per platform only",
			"ig first ig second",
			[]string{"📱 Instagram: first"},
		},
		{
			"nothing",
			"just a bio",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractLinks("", tt.bio)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("extractLinks(%q) mismatch (-want +got):\n%s", tt.bio, diff)
			}
		})
	}
}

func TestContainsAnyIsOneWay(t *testing.T) {
	if !containsAny([]string{"🔗 من البايو: www.site.com/page"}, "www.site.com") {
		t.Error("shorter candidate inside an existing entry should be suppressed")
	}
	if containsAny([]string{"www.site.com"}, "www.site.com/page") {
		t.Error("longer candidate must not be suppressed by a shorter entry")
	}
}
