package logger

import (
	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

func getDefaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Foreground(lipgloss.Color("86"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("192"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return styles
}
