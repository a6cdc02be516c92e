package util

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation collapsed", "John Q. Public!!", "john-q-public"},
		{"already clean", "jane-doe", "jane-doe"},
		{"uppercase", "Jane Doe", "jane-doe"},
		{"copy suffix", "Jane Doe-copy", "jane-doe-copy"},
		{"leading trailing junk", "--Hello World--", "hello-world"},
		{"unicode stripped", "José García", "jos-garc-a"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := GenerateSlug(c.in); got != c.want {
				t.Fatalf("GenerateSlug(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestGenerateSlugCapsLength(t *testing.T) {
	got := GenerateSlug(strings.Repeat("a", 80))
	if len(got) != SlugMaxLength {
		t.Fatalf("slug length = %d, want %d", len(got), SlugMaxLength)
	}
	if !ValidateSlug(got) {
		t.Fatalf("capped slug %q should still be valid", got)
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"jane-doe-2", "abc", "a1b", strings.Repeat("a", 50)}
	for _, s := range valid {
		if !ValidateSlug(s) {
			t.Errorf("ValidateSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"Jane_Doe", "ab", strings.Repeat("a", 51), "-abc", "abc-", "a--b", "jane doe", ""}
	for _, s := range invalid {
		if ValidateSlug(s) {
			t.Errorf("ValidateSlug(%q) = true, want false", s)
		}
	}
}
