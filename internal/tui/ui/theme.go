package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	Name              string
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
	BarFillColor      tcell.Color
}

// DarkTheme returns a k9s-inspired dark theme.
func DarkTheme() *Theme {
	return &Theme{
		Name:              "dark",
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorCadetBlue,
		BorderColor:       tcell.ColorDodgerBlue,
		BorderFocusColor:  tcell.ColorLightSkyBlue,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorAqua,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorOrange,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorAqua,
		MenuKeyColor:      tcell.ColorDodgerBlue,
		NumericKeyColor:   tcell.ColorFuchsia,
		TitleColor:        tcell.ColorFuchsia,
		CounterColor:      tcell.ColorPapayaWhip,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorDodgerBlue,
		BarFillColor:      tcell.ColorAqua,
	}
}

// LightTheme returns the inverted palette for light terminals.
func LightTheme() *Theme {
	return &Theme{
		Name:              "light",
		BgColor:           tcell.ColorWhite,
		FgColor:           tcell.ColorDarkSlateGray,
		BorderColor:       tcell.ColorSteelBlue,
		BorderFocusColor:  tcell.ColorRoyalBlue,
		TableHeaderFg:     tcell.ColorBlack,
		TableHeaderBg:     tcell.ColorWhite,
		TableCursorFg:     tcell.ColorWhite,
		TableCursorBg:     tcell.ColorSteelBlue,
		CrumbActiveFg:     tcell.ColorWhite,
		CrumbActiveBg:     tcell.ColorDarkOrange,
		CrumbInactiveFg:   tcell.ColorWhite,
		CrumbInactiveBg:   tcell.ColorSteelBlue,
		MenuKeyColor:      tcell.ColorRoyalBlue,
		NumericKeyColor:   tcell.ColorDarkMagenta,
		TitleColor:        tcell.ColorDarkMagenta,
		CounterColor:      tcell.ColorSaddleBrown,
		FlashInfoColor:    tcell.ColorDarkSlateGray,
		FlashWarnColor:    tcell.ColorDarkOrange,
		FlashErrColor:     tcell.ColorRed,
		PromptBorderColor: tcell.ColorSteelBlue,
		BarFillColor:      tcell.ColorSteelBlue,
	}
}

// ThemeByName maps a configured theme name to its palette. Unknown
// names fall back to dark.
func ThemeByName(name string) *Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
