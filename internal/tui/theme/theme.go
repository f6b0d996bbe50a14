package theme

import "github.com/charmbracelet/lipgloss"

var (
	BaseBg       = lipgloss.Color("#11111b")
	PanelBg      = lipgloss.Color("#1e1e2e")
	SurfaceBg    = lipgloss.Color("#313244")
	Accent       = lipgloss.Color("#cba6f7")
	Accent2      = lipgloss.Color("#89b4fa")
	Teal         = lipgloss.Color("#94e2d5")
	Peach        = lipgloss.Color("#fab387")
	SuccessColor = lipgloss.Color("#a6e3a1")
	WarnColor    = lipgloss.Color("#f9e2af")
	ErrorColor   = lipgloss.Color("#f38ba8")
	TextColor    = lipgloss.Color("#cdd6f4")
	SubTextColor = lipgloss.Color("#a6adc8")
	DimColor     = lipgloss.Color("#6c7086")
	OverlayColor = lipgloss.Color("#45475a")
	Flamingo     = lipgloss.Color("#f5c2e7")
)

const (
	IconSelected  = "✓"
	IconCursor    = "▌"
	IconCaretDown = "▾"
	IconCaretUp   = "▴"
	IconFilter    = ""
	IconDisabled  = "⊘"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
	SectionStyle = lipgloss.NewStyle().
			Foreground(Accent2).
			Bold(true)
	TextStyle = lipgloss.NewStyle().
			Foreground(TextColor)
	SubTextStyle = lipgloss.NewStyle().
			Foreground(SubTextColor)
	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)
	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)
	ListFrameStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OverlayColor)
	KeyStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(OverlayColor)
	FocusedRowStyle = lipgloss.NewStyle().
			Background(SurfaceBg).
			Foreground(Teal)
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)
	CursorStyle = lipgloss.NewStyle().
			Foreground(Accent)
	MatchStyle = lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true)
	ToastStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(SurfaceBg)
)

var Logo = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true).Render(IconCaretDown+" ") +
	lipgloss.NewStyle().Foreground(Flamingo).Bold(true).Render("drop") +
	lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("nav")
