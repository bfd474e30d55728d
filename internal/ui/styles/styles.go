// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	BackgroundColor = lipgloss.Color("#0B0F14")
	GoldColor       = lipgloss.Color("#C9A24D")
	TealColor       = lipgloss.Color("#2EC4B6")
	MutedColor      = lipgloss.Color("#9AA4B2")
	BorderColor     = lipgloss.Color("#1F2937")
	TextColor       = lipgloss.Color("#E5E7EB")
	ErrorColor      = lipgloss.Color("#F87171")
	SuccessColor    = lipgloss.Color("#34D399")
	WarningColor    = lipgloss.Color("#FBBF24")

	TitleStyle    = lipgloss.NewStyle().Foreground(GoldColor).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(MutedColor)
	AccentStyle   = lipgloss.NewStyle().Foreground(TealColor).Bold(true)
	TextStyle     = lipgloss.NewStyle().Foreground(TextColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)
	LabelStyle    = lipgloss.NewStyle().Foreground(MutedColor).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ErrorColor)
	WarningStyle  = lipgloss.NewStyle().Foreground(WarningColor)
	MoneyStyle    = lipgloss.NewStyle().Foreground(GoldColor)

	// Selection indicator style (used for ">" prefix in lists)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(TealColor)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	PassCardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(GoldColor).
			Padding(1, 2)

	// Button colors
	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(BackgroundColor).
				Background(GoldColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(BackgroundColor).
					Background(TealColor).
					Underline(true).
					UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(TextColor).
				Background(BorderColor)

	SecondaryButtonFocusedStyle = baseButtonStyle.
					Foreground(TextColor).
					Background(lipgloss.Color("#374151")).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(MutedColor).
				Background(lipgloss.Color("#2D2D2D"))

	// Toast notification colors
	ToastBorderSuccessColor = SuccessColor
	ToastBorderErrorColor   = ErrorColor
	ToastBorderInfoColor    = TealColor
	ToastBorderWarnColor    = WarningColor

	// Step indicator
	StepActiveStyle  = lipgloss.NewStyle().Foreground(BackgroundColor).Background(GoldColor).Bold(true).Padding(0, 1)
	StepDoneStyle    = lipgloss.NewStyle().Foreground(TealColor).Padding(0, 1)
	StepPendingStyle = lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1)
)

// Button renders a label with the primary or secondary button style,
// switching to the focused variant when focused is true.
func Button(label string, primary, focused bool) string {
	switch {
	case primary && focused:
		return PrimaryButtonFocusedStyle.Render(label)
	case primary:
		return PrimaryButtonStyle.Render(label)
	case focused:
		return SecondaryButtonFocusedStyle.Render(label)
	default:
		return SecondaryButtonStyle.Render(label)
	}
}

// ApplyTheme applies custom accent colors from configuration.
// Empty strings are ignored, keeping the default values.
func ApplyTheme(gold, teal, muted string) {
	if gold != "" {
		GoldColor = lipgloss.Color(gold)
		TitleStyle = TitleStyle.Foreground(GoldColor)
		MoneyStyle = MoneyStyle.Foreground(GoldColor)
		PassCardStyle = PassCardStyle.BorderForeground(GoldColor)
		PrimaryButtonStyle = PrimaryButtonStyle.Background(GoldColor)
		StepActiveStyle = StepActiveStyle.Background(GoldColor)
	}
	if teal != "" {
		TealColor = lipgloss.Color(teal)
		AccentStyle = AccentStyle.Foreground(TealColor)
		SelectionIndicatorStyle = SelectionIndicatorStyle.Foreground(TealColor)
		PrimaryButtonFocusedStyle = PrimaryButtonFocusedStyle.Background(TealColor)
		StepDoneStyle = StepDoneStyle.Foreground(TealColor)
		ToastBorderInfoColor = TealColor
	}
	if muted != "" {
		MutedColor = lipgloss.Color(muted)
		SubtitleStyle = SubtitleStyle.Foreground(MutedColor)
		MutedStyle = MutedStyle.Foreground(MutedColor)
		LabelStyle = LabelStyle.Foreground(MutedColor)
		StepPendingStyle = StepPendingStyle.Foreground(MutedColor)
	}
}
