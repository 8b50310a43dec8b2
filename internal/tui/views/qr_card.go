package views

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
)

// QRCard renders a client's contact card as a scannable QR code, so a
// phone can import the record directly.
type QRCard struct {
	*tview.TextView
	theme *ui.Theme
}

// NewQRCard creates the contact card view.
func NewQRCard(theme *ui.Theme) *QRCard {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Contact Card ")
	tv.SetTitleColor(theme.TitleColor)

	return &QRCard{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (qc *QRCard) Name() string { return "Contact Card" }

// Init implements Component.
func (qc *QRCard) Init() {}

// Start implements Component.
func (qc *QRCard) Start() {}

// Stop implements Component.
func (qc *QRCard) Stop() {}

// Hints implements Component.
func (qc *QRCard) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders the MECARD encoding of the client.
func (qc *QRCard) Update(c directory.Client) {
	qc.Clear()
	qc.SetTitle(fmt.Sprintf(" Contact Card - %s ", c.FullName()))

	ascii := renderQR(mecard(&c))
	_, _ = fmt.Fprintf(qc, "\n  Scan to import this contact:\n\n%s", ascii)
}

// mecard builds the MECARD payload for a client.
func mecard(c *directory.Client) string {
	var sb strings.Builder
	sb.WriteString("MECARD:")
	sb.WriteString("N:" + mecardEscape(c.LastName) + "," + mecardEscape(c.FirstName) + ";")
	sb.WriteString("TEL:" + mecardEscape(c.Phone) + ";")
	sb.WriteString("EMAIL:" + mecardEscape(c.Email) + ";")
	if c.Company != "" {
		sb.WriteString("ORG:" + mecardEscape(c.Company) + ";")
	}
	if c.Notes != "" {
		sb.WriteString("NOTE:" + mecardEscape(c.Notes) + ";")
	}
	sb.WriteString(";")
	return sb.String()
}

func mecardEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, ":", `\:`)
	return r.Replace(s)
}

// renderQR converts a string to a compact ASCII QR code using Unicode
// half-block characters.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "  (QR generation failed: " + err.Error() + ")"
	}
	qr.DisableBorder = false

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder

	for y := 0; y < rows; y += 2 {
		sb.WriteString("  ")
		for x := 0; x < cols; x++ {
			top := bitmap[y][x]
			bot := false
			if y+1 < rows {
				bot = bitmap[y+1][x]
			}
			switch {
			case top && bot:
				sb.WriteRune('█') // █
			case top && !bot:
				sb.WriteRune('▀') // ▀
			case !top && bot:
				sb.WriteRune('▄') // ▄
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}

	return sb.String()
}
