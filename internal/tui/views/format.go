package views

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// colorName returns a tview color tag value for a theme color.
func colorName(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 02, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 02, 2006 15:04")
}

// initials returns the avatar letters for a name pair, e.g. "MD".
// Names may start with a multi-byte rune.
func initials(first, last string) string {
	var sb strings.Builder
	for _, name := range []string{first, last} {
		r, size := utf8.DecodeRuneInString(name)
		if size > 0 {
			sb.WriteRune(unicode.ToUpper(r))
		}
	}
	return sb.String()
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
