package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/generate"
	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// CampaignApprovedMsg carries the campaign the user accepted.
type CampaignApprovedMsg struct {
	Campaign model.Campaign
}

// CancelMsg is dispatched when the user leaves the generator view.
type CancelMsg struct{}

// stepTickMsg advances the mocked pipeline one stage.
type stepTickMsg struct {
	next int
}

// regenDoneMsg finishes a single-platform regeneration.
type regenDoneMsg struct {
	platform model.Platform
}

// phase tracks the generator flow state.
type phase int

const (
	phasePlatforms phase = iota
	phaseGenerating
	phaseReview
)

// Model is the campaign generator view.
type Model struct {
	product   model.Product
	phase     phase
	selected  map[model.Platform]bool
	cursor    int
	progress  model.GenerationProgress
	bar       progress.Model
	campaign  model.Campaign
	reviewTab int
	width     int
	height    int
}

// New creates a new generator model.
func New(width, height int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = width - 20
	return Model{bar: bar, width: width, height: height}
}

// Start resets the view for a fresh generation run.
func (m *Model) Start(p model.Product) {
	m.product = p
	m.phase = phasePlatforms
	m.selected = map[model.Platform]bool{
		model.PlatformFacebook:  true,
		model.PlatformInstagram: true,
		model.PlatformYouTube:   true,
	}
	m.cursor = 0
	m.reviewTab = 0
	m.progress = model.GenerationProgress{}
}

// Progress exposes the pipeline state for the app header.
func (m Model) Progress() model.GenerationProgress {
	return m.progress
}

// platforms returns the user's selection in display order.
func (m Model) platforms() []model.Platform {
	var out []model.Platform
	for _, p := range model.Platforms {
		if m.selected[p] {
			out = append(out, p)
		}
	}
	return out
}

// Update handles messages for the generator view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTickMsg:
		if m.phase != phaseGenerating {
			return m, nil
		}
		m.progress = generate.ProgressAt(msg.next)
		if m.progress.IsComplete {
			m.campaign = generate.NewCampaign(m.product, m.platforms())
			m.phase = phaseReview
			return m, nil
		}
		return m, stepAfter(msg.next + 1)

	case regenDoneMsg:
		m.progress = generate.RegenDone()
		content := generate.Content(m.product, []model.Platform{msg.platform})
		switch msg.platform {
		case model.PlatformFacebook:
			m.campaign.Content.Facebook = content.Facebook
		case model.PlatformInstagram:
			m.campaign.Content.Instagram = content.Instagram
		case model.PlatformYouTube:
			m.campaign.Content.YouTube = content.YouTube
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.phase {
	case phasePlatforms:
		switch msg.String() {
		case "down", "j":
			if m.cursor < len(model.Platforms)-1 {
				m.cursor++
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case " ":
			p := model.Platforms[m.cursor]
			m.selected[p] = !m.selected[p]
		case "enter":
			if len(m.platforms()) == 0 {
				return m, nil
			}
			m.phase = phaseGenerating
			m.progress = generate.ProgressAt(0)
			return m, stepAfter(1)
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case phaseGenerating:
		if msg.String() == "esc" {
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case phaseReview:
		tabs := m.platforms()
		switch msg.String() {
		case "tab", "right", "l":
			if m.reviewTab < len(tabs)-1 {
				m.reviewTab++
			}
		case "shift+tab", "left", "h":
			if m.reviewTab > 0 {
				m.reviewTab--
			}
		case "r":
			if m.reviewTab < len(tabs) {
				platform := tabs[m.reviewTab]
				m.progress = generate.RegenStart(platform)
				return m, tea.Tick(generate.StepInterval, func(time.Time) tea.Msg {
					return regenDoneMsg{platform: platform}
				})
			}
		case "enter":
			campaign := m.campaign
			return m, func() tea.Msg { return CampaignApprovedMsg{Campaign: campaign} }
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	return m, nil
}

// stepAfter schedules the next pipeline stage.
func stepAfter(next int) tea.Cmd {
	return tea.Tick(generate.StepInterval, func(time.Time) tea.Msg {
		return stepTickMsg{next: next}
	})
}

// View renders the generator view.
func (m Model) View() string {
	title := theme.HeaderStyle.Render(
		fmt.Sprintf("Generate Campaign — %s", m.product.Name),
	)

	var body string
	switch m.phase {
	case phasePlatforms:
		lines := make([]string, 0, len(model.Platforms)+2)
		for i, p := range model.Platforms {
			check := "[ ]"
			if m.selected[p] {
				check = "[x]"
			}
			line := fmt.Sprintf("%s %s", check, p)
			if i == m.cursor {
				line = theme.SelectedItemStyle.Render(line)
			} else {
				line = theme.ListItemStyle.Render(line)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "", theme.HelpStyle.Render(
			"space toggle • enter generate • esc cancel",
		))
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)

	case phaseGenerating:
		pct := float64(m.progress.Step) / float64(m.progress.TotalSteps)
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			m.progress.CurrentTask,
			"",
			m.bar.ViewAs(pct),
			theme.HelpStyle.Render(fmt.Sprintf(
				"step %d of %d", m.progress.Step, m.progress.TotalSteps,
			)),
		)

	case phaseReview:
		body = m.reviewView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

func (m Model) reviewView() string {
	tabs := m.platforms()
	headers := make([]string, len(tabs))
	for i, p := range tabs {
		label := string(p)
		if i == m.reviewTab {
			headers[i] = theme.SelectedItemStyle.Render(" " + label + " ")
		} else {
			headers[i] = theme.ListItemStyle.Render(" " + label + " ")
		}
	}

	var content string
	if m.reviewTab < len(tabs) {
		content = m.platformContent(tabs[m.reviewTab])
	}

	status := ""
	if m.progress.CurrentTask != "" && strings.HasPrefix(m.progress.CurrentTask, "Regen") {
		status = theme.HelpStyle.Render(m.progress.CurrentTask)
	}

	help := theme.HelpStyle.Render(
		"tab switch platform • r regenerate • enter approve • esc cancel",
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
		"",
		theme.PanelStyle.Render(content),
		status,
		help,
	)
}

func (m Model) platformContent(p model.Platform) string {
	switch p {
	case model.PlatformFacebook:
		if c := m.campaign.Content.Facebook; c != nil {
			return postView(c)
		}
	case model.PlatformInstagram:
		if c := m.campaign.Content.Instagram; c != nil {
			return postView(c)
		}
	case model.PlatformYouTube:
		if c := m.campaign.Content.YouTube; c != nil {
			return lipgloss.JoinVertical(
				lipgloss.Left,
				c.Script,
				"",
				theme.HelpStyle.Render("Thumbnail: "+c.ThumbnailDescription),
				"",
				"Ad copy:",
				"  • "+strings.Join(c.AdCopy, "\n  • "),
			)
		}
	}
	return ""
}

func postView(c *model.PostContent) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		c.Post,
		"",
		theme.HelpStyle.Render("Image: "+c.ImageDescription),
		"",
		"Ad copy:",
		"  • "+strings.Join(c.AdCopy, "\n  • "),
	)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = width - 20
}
