package content

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Foo", "foo"},
		{"spaces", "  Hello   World  ", "hello-world"},
		{"punctuation runs", "Go -- the good parts!!!", "go-the-good-parts"},
		{"denylist removed before slugging", "Don't (really) panic: v1.2", "dont-really-panic-v12"},
		{"accents folded", "Café Crème Brûlée", "cafe-creme-brulee"},
		{"numbers kept", "Top 10 Tips for 2024", "top-10-tips-for-2024"},
		{"symbols separate", "C#/Go & Rust", "c-go-rust"},
		{"only punctuation", "!!! ... ***", FallbackSlug},
		{"leading and trailing separators", "--Hello--", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_AlwaysWellFormed(t *testing.T) {
	alphabet := []rune("abcXYZ019 -_.,!?@#$%^&*()[]{}'\"éüñß漢字\t\n")
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		n := 1 + r.Intn(40)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(alphabet[r.Intn(len(alphabet))])
		}

		slug := Slugify(b.String())
		assert.Regexp(t, slugShape, slug, "title %q", b.String())
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "foo", WithSuffix("foo", 0))
	assert.Equal(t, "foo-1", WithSuffix("foo", 1))
	assert.Equal(t, "foo-12", WithSuffix("foo", 12))
}
