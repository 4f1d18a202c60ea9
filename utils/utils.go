package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var spaces = regexp.MustCompile(`\s+`)

// FoldName lowercases a name and strips accents so "Élodie" matches "elodie".
func FoldName(name string) string {
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s := strings.ToLower(b.String())
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseInterviewDate accepts a calendar date (2006-01-02) or a full RFC3339 timestamp.
func ParseInterviewDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if d, err := time.Parse("2006-01-02", v); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", v)
	}
	return d.UTC(), nil
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
