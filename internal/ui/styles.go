package ui

import "github.com/charmbracelet/lipgloss"

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#25A065")).Padding(0, 1).Bold(true)

var countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

var taskStyle = lipgloss.NewStyle()

var selectedTaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EE6FF8")).Bold(true)

// Completed rows are struck through.
var completedTaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Strikethrough(true)

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Italic(true)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
