package products

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// Item wraps a model.Product so it can be used in a bubbles/list.
type Item struct {
	Product model.Product
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Product.Name }

// Title returns the product name for the list.
func (i Item) Title() string { return i.Product.Name }

// Description returns a short summary line for the list.
func (i Item) Description() string {
	parts := []string{
		i.Product.Category,
		fmt.Sprintf("$%.2f", i.Product.Price),
	}
	if i.Product.IsTrend {
		parts = append(parts, fmt.Sprintf("▲ %d%%", i.Product.TrendingPercentage))
	}
	parts = append(parts, relativeTime(i.Product.UpdatedAt))
	return strings.Join(parts, " | ")
}

// Delegate implements list.ItemDelegate for rendering product rows.
type Delegate struct{}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 0 }

// Update is a no-op; selection handling lives in the products Model.
func (d Delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render draws a single product row.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(Item)
	if !ok {
		return
	}

	name := i.Product.Name
	if len(name) > 40 {
		name = name[:37] + "..."
	}

	price := fmt.Sprintf("$%.2f", i.Product.Price)

	trend := "  "
	if i.Product.IsTrend {
		trend = theme.TrendStyle.Render(
			fmt.Sprintf("▲%d%%", i.Product.TrendingPercentage),
		)
	}

	line := fmt.Sprintf("%-40s %-20s %8s %s", name, i.Product.Category, price, trend)

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

// relativeTime formats a timestamp as a compact "2h ago" style string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
