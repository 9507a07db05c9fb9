package markdown

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"underscore", "user_name", `user\_name`},
		{"dot and dash", "v1.2-beta", `v1\.2\-beta`},
		{"parens", "(فارغ)", `\(فارغ\)`},
		{"exclamation", "wow!", `wow\!`},
		{"full reserved set", "_*[]()~`>#+-.=|{}!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\.\\=\\|\\{\\}\\!"},
		{"comma untouched", "1,234,567", "1,234,567"},
		{"arabic untouched", "اسم المستخدم", "اسم المستخدم"},
		{"empty", "", ""},
		{"url", "https://t.co/abc", `https://t\.co/abc`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Escape(tt.in)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Escape is documented as non-idempotent: a second application escapes the
// dot again while leaving the first backslash alone.
func TestEscapeNotIdempotent(t *testing.T) {
	once := Escape("a.b")
	twice := Escape(once)
	if twice == once {
		t.Errorf("Escape(Escape(%q)) = %q, expected double escaping", "a.b", twice)
	}
	if want := `a\\.b`; twice != want {
		t.Errorf("Escape(%q) = %q, want %q", once, twice, want)
	}
}

func TestEscapeAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", 42, "42"},
		{"negative int", -7, `\-7`},
		{"string passthrough", "a.b", `a\.b`},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeAny(tt.in)
			if got != tt.want {
				t.Errorf("EscapeAny(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold stripped", "*bold* text", "bold text"},
		{"escape reversed", `a\.b`, "a.b"},
		{"code span stripped", "`testuser`", "testuser"},
		{"link flattened", "[اضغط هنا](https://www.tiktok.com/@u)", "اضغط هناhttps://www.tiktok.com/@u"},
		{"escaped delimiter lost", `\*not bold\*`, "not bold"},
		{"plain text untouched", "مرحبا 👋", "مرحبا 👋"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPlain(tt.in)
			if got != tt.want {
				t.Errorf("ToPlain(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
