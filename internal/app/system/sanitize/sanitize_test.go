package sanitize_test

import (
	"testing"

	"github.com/dalemusser/labhub/internal/app/system/sanitize"
)

func TestText(t *testing.T) {
	cases := map[string]string{
		"  plain text  ":                       "plain text",
		"<script>alert('x')</script>hello":     "hello",
		"<b>bold</b> claim":                    "bold claim",
		"":                                     "",
		"<img src=x onerror=alert(1)>caption":  "caption",
	}
	for in, want := range cases {
		if got := sanitize.Text(in); got != want {
			t.Errorf("Text(%q): got %q, want %q", in, got, want)
		}
	}
}
