package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Theme is the palette of the interactive client
type Theme struct {
	Name       string
	Background tcell.Color
	Contrast   tcell.Color
	Text       tcell.Color
	Secondary  tcell.Color
	Accent     tcell.Color
	Border     tcell.Color
	Selected   tcell.Color
}

// DarkTheme is used when dark mode is on
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: tcell.ColorBlack,
		Contrast:   tcell.NewRGBColor(40, 44, 52),
		Text:       tcell.ColorWhite,
		Secondary:  tcell.ColorGray,
		Accent:     tcell.ColorDarkCyan,
		Border:     tcell.ColorDarkCyan,
		Selected:   tcell.ColorDarkCyan,
	}
}

// LightTheme is the default
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: tcell.ColorWhite,
		Contrast:   tcell.ColorLightGray,
		Text:       tcell.ColorBlack,
		Secondary:  tcell.ColorDimGray,
		Accent:     tcell.ColorNavy,
		Border:     tcell.ColorSteelBlue,
		Selected:   tcell.ColorLightSkyBlue,
	}
}

// ThemeFor picks the theme for the dark mode preference
func ThemeFor(darkMode bool) Theme {
	if darkMode {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles converts the theme into tview's global styles
func (t Theme) Styles() tview.Theme {
	return tview.Theme{
		PrimitiveBackgroundColor:    t.Background,
		ContrastBackgroundColor:     t.Contrast,
		MoreContrastBackgroundColor: t.Selected,
		BorderColor:                 t.Border,
		TitleColor:                  t.Accent,
		GraphicsColor:               t.Border,
		PrimaryTextColor:            t.Text,
		SecondaryTextColor:          t.Accent,
		TertiaryTextColor:           t.Secondary,
		InverseTextColor:            t.Background,
		ContrastSecondaryTextColor:  t.Text,
	}
}
