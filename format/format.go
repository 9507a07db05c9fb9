// Package format renders an extracted profile (or a fetch failure) as a
// Telegram MarkdownV2 message.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hazemely102/tikinfo/markdown"
	"github.com/hazemely102/tikinfo/profile"
)

// groupPrinter renders counters with English thousands separators. The comma
// is not in the MarkdownV2 reserved set, so escaping grouped numbers is a
// deliberate no-op; the call sites still escape them to honor the
// escape-once contract.
var groupPrinter = message.NewPrinter(language.English)

// embeddedURLPattern finds a URL inside a social-link annotation so the
// entry can be rendered as a proper link.
var embeddedURLPattern = regexp.MustCompile(`(https?://\S+|www\.\S+)`)

const (
	socialHeading  = "🔗 روابط اجتماعية وإشارات:"
	noBio          = "(لا يوجد بايو)"
	emptyBio       = "(فارغ)"
	nothingFound   = "(لم يتم العثور على شيء)"
	profileLinkCue = "اضغط هنا"
)

// Message renders a profile as a MarkdownV2 message body: labeled identity
// and counter lines, the bio block, and the social-links block.
func Message(p *profile.Profile) string {
	lines := []string{
		fmt.Sprintf("*👤 اسم المستخدم:* `%s`", markdown.Escape(p.Username)),
		fmt.Sprintf("*📛 الاسم الكامل:* %s", markdown.Escape(p.FullName)),
		fmt.Sprintf("*✅ موثق:* %s", yesNo(p.Verified)),
		fmt.Sprintf("*🔒 حساب خاص:* %s", yesNo(p.PrivateAccount)),
		fmt.Sprintf("*👥 المتابعون:* %s", markdown.Escape(grouped(p.Followers))),
		fmt.Sprintf("*➡️ يتابع:* %s", markdown.Escape(grouped(p.Following))),
		fmt.Sprintf("*❤️ الإعجابات:* %s", markdown.Escape(grouped(p.Likes))),
		fmt.Sprintf("*🎥 الفيديوهات:* %s", markdown.EscapeAny(p.Videos)),
		fmt.Sprintf("*🌍 المنطقة:* %s", markdown.Escape(p.Region)),
		fmt.Sprintf("*🈯 اللغة:* %s", markdown.Escape(p.Language)),
		// The link target stays raw: escaping applies to label text only,
		// never to the URL inside the () link syntax.
		fmt.Sprintf("*🔗 رابط الملف الشخصي:* [%s](%s)", markdown.Escape(profileLinkCue), p.ProfileURL),
		"\n*📝 البايو:*",
	}

	lines = append(lines, bioBlock(p.Bio))
	lines = append(lines, socialBlock(p.SocialLinks)...)

	return strings.Join(lines, "\n")
}

// ErrorMessage renders a fetch failure as a single plain line. The message is
// passed through unescaped.
func ErrorMessage(err error) string {
	return "❌ خطأ: " + err.Error()
}

// PhotoCaption returns the profile picture caption in both render forms.
func PhotoCaption(username string) (markup, plain string) {
	plain = "صورة الملف الشخصي لـ @" + username
	markup = "صورة الملف الشخصي لـ @" + markdown.Escape(username)
	return markup, plain
}

func yesNo(v bool) string {
	if v {
		return "نعم"
	}
	return "لا"
}

func grouped(n int) string {
	return groupPrinter.Sprintf("%d", n)
}

// bioBlock renders the bio with each line escaped and indented. An absent bio
// renders the fixed placeholder line, never an empty block.
func bioBlock(bio string) string {
	if bio == "" || bio == profile.NotFound {
		return "   " + markdown.Escape(noBio)
	}
	bioLines := strings.Split(strings.TrimSuffix(bio, "\n"), "\n")
	if len(bioLines) == 0 {
		return "   " + markdown.Escape(emptyBio)
	}
	indented := make([]string, 0, len(bioLines))
	for _, line := range bioLines {
		indented = append(indented, "   "+markdown.Escape(line))
	}
	return strings.Join(indented, "\n")
}

// socialBlock renders each collected link annotation. Entries carrying a URL
// become a link whose bracketed label is escaped while the target URL is left
// untouched; entries without one are escaped wholesale. An empty list renders
// the fixed placeholder on the heading line.
func socialBlock(links []string) []string {
	if len(links) == 0 {
		return []string{fmt.Sprintf("\n*%s* %s", markdown.Escape(socialHeading), markdown.Escape(nothingFound))}
	}

	out := []string{fmt.Sprintf("\n*%s*", markdown.Escape(socialHeading))}
	for _, entry := range links {
		linkURL := embeddedURLPattern.FindString(entry)
		if linkURL == "" {
			out = append(out, `  \- `+markdown.Escape(entry))
			continue
		}
		label := strings.TrimSpace(strings.ReplaceAll(entry, linkURL, ""))
		if label == "" {
			label = linkURL
		}
		out = append(out, fmt.Sprintf(`  \- %s: [%s](%s)`, markdown.Escape(label), markdown.Escape(linkURL), linkURL))
	}
	return out
}
