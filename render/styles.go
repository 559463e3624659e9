package render

import "github.com/charmbracelet/lipgloss"

// Theme selects the palette tuned for the terminal background.
type Theme string

const (
  ThemeDark  Theme = "dark"
  ThemeLight Theme = "light"
)

// Hub address colors, ten slots per theme, handed out round-robin by the
// registry. With more than ten hubs colors repeat before tags do.
var paletteDark = []lipgloss.Style{
  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // bright red
  lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // bright green
  lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // bright yellow
  lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
  lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // bright magenta
  lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // bright cyan
  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),  // red
  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),  // green
  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),  // yellow
  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),  // magenta
}

var paletteLight = []lipgloss.Style{
  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),  // red
  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),  // green
  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),  // blue
  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),  // magenta
  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),  // cyan
  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),  // yellow/brown
  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // bright red
  lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // bright green
  lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
  lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // bright magenta
}

// Palette returns the address styles for a theme. Unknown themes fall back
// to the light palette.
func Palette(t Theme) []lipgloss.Style {
  if t == ThemeDark {
    return paletteDark
  }

  return paletteLight
}
