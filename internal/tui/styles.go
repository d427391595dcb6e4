package tui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)

	conflictCellStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("9")).
				Foreground(lipgloss.Color("15"))
)

var blockPalette = []lipgloss.Color{"4", "5", "6", "2", "3", "13", "12", "14"}

// blockStyle colors a block by its section color, or a stable palette entry
// picked from the owner when the section has none.
func blockStyle(owner, color string) lipgloss.Style {
	c := lipgloss.Color(color)
	if color == "" {
		h := fnv.New32a()
		h.Write([]byte(owner))
		c = blockPalette[h.Sum32()%uint32(len(blockPalette))]
	}
	return lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("0"))
}

// Styles used by the CLI for plain, non-interactive output.
var (
	Title   = titleStyle
	Dim     = dimStyle
	Warning = warningStyle
	Success = successStyle
	Error   = errorStyle
)
