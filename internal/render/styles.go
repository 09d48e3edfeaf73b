package render

import "github.com/charmbracelet/lipgloss"

var (
	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4136"}).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	issueStyle = lipgloss.NewStyle().PaddingLeft(2)
)
