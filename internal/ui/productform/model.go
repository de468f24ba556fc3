package productform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// CreatedMsg is dispatched when the form submits a new product.
type CreatedMsg struct {
	Input model.ProductInput
}

// UpdatedMsg is dispatched when the form submits an edit.
type UpdatedMsg struct {
	ProductID string
	Patch     model.ProductPatch
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	category    string
	price       string
	imageURL    string
	keywords    string
}

// Model is the Bubble Tea model for the product create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new product form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{category: model.Categories[0]},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new product. When
// prefill is non-nil (URL import), its values seed the fields.
func (m *Model) StartCreate(prefill *model.ProductInput) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.name = ""
	m.fb.description = ""
	m.fb.category = model.Categories[0]
	m.fb.price = ""
	m.fb.imageURL = ""
	m.fb.keywords = ""

	if prefill != nil {
		m.fb.name = prefill.Name
		m.fb.description = prefill.Description
		if model.IsValidCategory(prefill.Category) {
			m.fb.category = prefill.Category
		}
		m.fb.price = strconv.FormatFloat(prefill.Price, 'f', 2, 64)
		m.fb.imageURL = prefill.ImageURL
		m.fb.keywords = prefill.Keywords
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing product.
func (m *Model) StartEdit(p model.Product) tea.Cmd {
	m.editMode = true
	m.editID = p.ID
	m.fb.name = p.Name
	m.fb.description = p.Description
	m.fb.category = p.Category
	if !model.IsValidCategory(p.Category) {
		m.fb.category = "Other"
	}
	m.fb.price = strconv.FormatFloat(p.Price, 'f', 2, 64)
	m.fb.imageURL = p.ImageURL
	m.fb.keywords = p.Keywords
	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm assembles the huh form with client-side validation. Invalid
// input never reaches the store layer.
func (m *Model) buildForm() *huh.Form {
	categoryOptions := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOptions[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.fb.name).
				Validate(required("name")),
			huh.NewText().
				Title("Description").
				Value(&m.fb.description).
				Lines(3).
				Validate(required("description")),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&m.fb.category),
			huh.NewInput().
				Title("Price").
				Value(&m.fb.price).
				Validate(validatePrice),
			huh.NewInput().
				Title("Image URL").
				Placeholder("https://...").
				Value(&m.fb.imageURL),
			huh.NewInput().
				Title("Keywords").
				Placeholder("comma, separated, keywords").
				Value(&m.fb.keywords),
		),
	).WithShowHelp(true)
}

// required builds a non-empty validator for a named field.
func required(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// validatePrice checks that the price parses and is non-negative.
func validatePrice(v string) error {
	price, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("price must be a number")
	}
	if price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// Update handles messages for the product form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit converts the field values into the appropriate message.
func (m Model) handleSubmit() tea.Cmd {
	price, _ := strconv.ParseFloat(strings.TrimSpace(m.fb.price), 64)

	if m.editMode {
		name := strings.TrimSpace(m.fb.name)
		description := strings.TrimSpace(m.fb.description)
		category := m.fb.category
		imageURL := strings.TrimSpace(m.fb.imageURL)
		keywords := strings.TrimSpace(m.fb.keywords)
		p := price

		editID := m.editID
		patch := model.ProductPatch{
			Name:        &name,
			Description: &description,
			Category:    &category,
			Price:       &p,
			ImageURL:    &imageURL,
			Keywords:    &keywords,
		}
		return func() tea.Msg {
			return UpdatedMsg{ProductID: editID, Patch: patch}
		}
	}

	input := model.ProductInput{
		Name:        strings.TrimSpace(m.fb.name),
		Description: strings.TrimSpace(m.fb.description),
		Category:    m.fb.category,
		Price:       price,
		ImageURL:    strings.TrimSpace(m.fb.imageURL),
		Keywords:    strings.TrimSpace(m.fb.keywords),
	}
	return func() tea.Msg {
		return CreatedMsg{Input: input}
	}
}

// View renders the product form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Product"
	if m.editMode {
		titleText = "Edit Product"
	}
	title := theme.HeaderStyle.Render(titleText)

	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(width - 4)
	}
}
