package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LevelStyle returns the style for a toast level.
func LevelStyle(l notify.Level) lipgloss.Style {
	switch l {
	case notify.LevelError:
		return StyleRed
	case notify.LevelWarning:
		return StyleYellow
	case notify.LevelSuccess:
		return StyleGreen
	default:
		return StyleBlue
	}
}

// LevelIcon returns the glyph shown before a toast title.
func LevelIcon(l notify.Level) string {
	switch l {
	case notify.LevelError:
		return "✖"
	case notify.LevelWarning:
		return "▲"
	case notify.LevelSuccess:
		return "✔"
	default:
		return "●"
	}
}

// DraftStatusPill returns a colored indicator for the local draft status.
func DraftStatusPill(s domain.DraftStatus) string {
	switch s {
	case domain.DraftEditing:
		return StyleBlue.Render("○ Editing")
	case domain.DraftSubmitted:
		return StyleGreen.Render("✔ Submitted")
	case domain.DraftRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(s))
	}
}

// GigStatusPill returns a colored indicator for the server-side gig status.
func GigStatusPill(s domain.GigStatus) string {
	switch s {
	case domain.GigStatusNew:
		return StyleBlue.Render("○ New")
	case domain.GigStatusDraft:
		return StyleYellow.Render("○ Draft")
	case domain.GigStatusPending:
		return StyleYellow.Render("○ Pending")
	case domain.GigStatusPublished:
		return StyleGreen.Render("● Published")
	case domain.GigStatusInProgress:
		return StylePurple.Render("● In Progress")
	default:
		return StyleDim.Render(string(s))
	}
}

// KindBadge returns a purple label for the draft kind.
func KindBadge(k domain.DraftKind) string {
	if k == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ToUpper(string(k[:1])) + string(k[1:]))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
