package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#A78BFA")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#3B82F6")
	Muted     = lipgloss.Color("#6B7280")
	TextDim   = lipgloss.Color("#9CA3AF")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SizeStyle = lipgloss.NewStyle().
			Foreground(Warning)

	RecommendedStyle = lipgloss.NewStyle().
				Foreground(Success)

	UnsafeStyle = lipgloss.NewStyle().
			Foreground(Danger)

	ItemPathStyle = lipgloss.NewStyle().
			Foreground(Info)
)
