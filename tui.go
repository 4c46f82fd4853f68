// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Focus targets cycled with tab
const (
	FocusInput = iota
	FocusOutput
	FocusReport
)

// Model is the Bubble Tea state of the roster terminal UI.
type Model struct {
	ready bool

	commandInput   textinput.Model
	outputViewport viewport.Model
	reportViewport viewport.Model

	session   *Session
	output    *bytes.Buffer
	helpCache *cache.Cache

	focusIndex int
	showHelp   bool
	status     string

	styles *Styles

	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// InitialModel builds the UI around a session whose output is output.
func InitialModel(session *Session, output *bytes.Buffer, hc *cache.Cache) Model {
	ti := textinput.New()
	ti.Placeholder = "insert 1 36 Ada Lovelace"
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	outputViewport := viewport.New(0, 0)
	outputViewport.SetContent("Type a command and press enter. F1 shows the command guide.")

	reportViewport := viewport.New(0, 0)

	m := Model{
		commandInput:   ti,
		outputViewport: outputViewport,
		reportViewport: reportViewport,
		session:        session,
		output:         output,
		helpCache:      hc,
		focusIndex:     FocusInput,
		styles:         NewStyles(),
	}
	m.refreshReport()
	return m
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focusIndex = (m.focusIndex + 1) % 3
			if m.focusIndex == FocusInput {
				m.commandInput.Focus()
			} else {
				m.commandInput.Blur()
			}
			return m, nil
		case "f1":
			m.showHelp = !m.showHelp
			m.refreshReport()
			return m, nil
		case "ctrl+y":
			var buf bytes.Buffer
			if err := m.session.WriteReport(&buf); err != nil {
				m.status = m.styles.ErrorMessage.Render(err.Error())
			} else if err := clipboard.WriteAll(buf.String()); err != nil {
				m.status = m.styles.ErrorMessage.Render(fmt.Sprintf("Failed to copy report: %v", err))
			} else {
				m.status = m.styles.SuccessMessage.Render("📋 Report copied to clipboard")
			}
			return m, nil
		case "enter":
			if m.focusIndex == FocusInput {
				return m.execute()
			}
		case "pgup", "pgdown", "up", "down", "home", "end":
			if m.focusIndex != FocusInput {
				m.scroll(msg.String())
				return m, nil
			}
		}

		if m.focusIndex == FocusInput {
			m.commandInput, cmd = m.commandInput.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshReport()
		m.ready = true
	}

	return m, nil
}

// execute runs the typed command and refreshes both panes.
func (m Model) execute() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.commandInput.Value())
	m.commandInput.SetValue("")
	if line == "" {
		return m, nil
	}

	fmt.Fprintf(m.output, "%s %s\n", m.commandInput.Prompt, line)
	err := m.session.Execute(line)
	switch {
	case errors.Is(err, errQuit):
		return m, tea.Quit
	case err != nil:
		fmt.Fprintln(m.output, m.styles.ErrorMessage.Render(err.Error()))
	}

	m.status = ""
	m.outputViewport.SetContent(m.output.String())
	m.outputViewport.GotoBottom()
	m.refreshReport()
	return m, nil
}

func (m *Model) scroll(key string) {
	vp := &m.outputViewport
	if m.focusIndex == FocusReport {
		vp = &m.reportViewport
	}

	switch key {
	case "up":
		vp.LineUp(1)
	case "down":
		vp.LineDown(1)
	case "pgup":
		vp.LineUp(vp.Height)
	case "pgdown":
		vp.LineDown(vp.Height)
	case "home":
		vp.GotoTop()
	case "end":
		vp.GotoBottom()
	}
}

// refreshReport fills the right pane with either the live report or the
// rendered command guide.
func (m *Model) refreshReport() {
	if m.showHelp {
		m.reportViewport.SetContent(m.renderGuide())
		m.reportViewport.GotoTop()
		return
	}

	var buf bytes.Buffer
	if err := m.session.WriteReport(&buf); err != nil {
		m.reportViewport.SetContent(err.Error())
		return
	}
	m.reportViewport.SetContent(buf.String())
}

// renderGuide renders the usage markdown for the current pane width,
// caching the result per width.
func (m *Model) renderGuide() string {
	width := max(m.reportViewport.Width-2, 20)
	guide, err := GetOrFillHelp(m.helpCache, "usage", width, func() (string, error) {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		return r.Render(usageMarkdown())
	})
	if err != nil {
		return usageMarkdown()
	}
	return guide
}

func (m *Model) updateLayout() {
	inputHeight := 3
	bodyHeight := m.height - inputHeight - 6
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	m.commandInput.Width = leftWidth - 6
	m.outputViewport.Width = leftWidth - 2
	m.outputViewport.Height = bodyHeight - 3
	m.reportViewport.Width = rightWidth - 2
	m.reportViewport.Height = bodyHeight + inputHeight - 1
}

func (m Model) border(focus int) lipgloss.Style {
	if m.focusIndex == focus {
		return m.styles.BorderFocused
	}
	return m.styles.BorderBlurred
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	bodyHeight := m.height - inputHeight - 6
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	inputBox := m.border(FocusInput).
		Width(leftWidth).
		Height(inputHeight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(leftWidth-4).Render(" ⌨️  Command\n"),
			m.commandInput.View(),
		))

	outputBox := m.border(FocusOutput).
		Width(leftWidth).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(leftWidth-4).Render(" 📜 Output "),
			m.outputViewport.View(),
		))

	rightTitle := " 🌳 Report "
	if m.showHelp {
		rightTitle = " 📖 Command Guide "
	}
	reportBox := m.border(FocusReport).
		Width(rightWidth).
		Height(bodyHeight + inputHeight + 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(rightWidth-4).Render(rightTitle),
			m.reportViewport.View(),
		))

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, inputBox, outputBox),
		reportBox,
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter())
}

// renderFooter renders the key binding help line and the status message
func (m Model) renderFooter() string {
	bindings := [][2]string{
		{"enter", "run command"},
		{"tab", "switch focus"},
		{"f1", "command guide"},
		{"ctrl+y", "copy report"},
		{"esc", "quit"},
	}

	var entries []string
	for _, b := range bindings {
		entries = append(entries, fmt.Sprintf("%s %s",
			m.styles.HelpKey.Render(b[0]),
			m.styles.HelpDesc.Render(b[1])))
	}

	footer := strings.Join(entries, " • ")
	if m.status != "" {
		footer += "   " + m.status
	}
	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(footer)
}

// tuiLogger returns the logger used while the alternate screen is active.
// Anything written to the terminal would land on top of the UI, so logs go
// to path when one is given and are discarded otherwise.
func tuiLogger(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "roster")
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return newLogger(f, level), f, nil
}

// runBubbleTeaApp starts the Bubble Tea application
func runBubbleTeaApp(session *Session, output *bytes.Buffer, hc *cache.Cache) error {
	model := InitialModel(session, output, hc)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
