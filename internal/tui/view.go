package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/jask/productcap/internal/catalog"
	"github.com/jask/productcap/internal/photo"
)

const (
	pickerHeight  = 15
	nameColumnMax = 32
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorLavender)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorBlue)
	disabledStyle = buttonStyle.Foreground(colorSurface1).BorderForeground(colorSurface1)
	alertStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorRed).Padding(0, 2)
	statusStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewPicker:
		body = a.renderPicker()
	default:
		body = a.renderForm()
	}
	if a.modal == modalAlert {
		body += "\n\n" + a.renderAlert()
	}
	return body
}

func (a *App) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Product Upload App"))
	b.WriteString("\n\n")
	for _, in := range a.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	draft := a.session.Draft.Value()
	if ref := draft.Photo(); ref != "" {
		b.WriteString("Photo: " + photo.DisplayName(ref))
	} else {
		b.WriteString(mutedStyle.Render("Photo: (none)"))
	}
	b.WriteString("\n")

	add := buttonStyle.Render("Add Product")
	if a.session.Store.Full() {
		add = disabledStyle.Render("Add Product")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttonStyle.Render("Select Photo"), " ", add))
	b.WriteString("\n\n")

	b.WriteString(a.renderProducts())

	b.WriteString("\n" + mutedStyle.Render("[tab] Next field  [ctrl+p] Select photo  [enter] Add product  [ctrl+c] Quit"))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}

func (a *App) renderProducts() string {
	items := a.session.Store.Items()
	out := labelStyle.Render(fmt.Sprintf("Products (%d/%d):", len(items), catalog.Capacity)) + "\n"
	for _, it := range items {
		name := ansi.Truncate(it.Name, nameColumnMax, "…")
		out += fmt.Sprintf("  %-*s  %10s  %s\n", nameColumnMax, name, formatPrice(a.cfg.UI.CurrencySymbol, it.Price), photo.DisplayName(it.Photo()))
	}
	return out
}

func (a *App) renderPicker() string {
	title := titleStyle.Render("Select Photo")
	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, mutedStyle.Render(a.picker.Dir()), a.picker.View(), mutedStyle.Render("[enter] Select  [h/backspace] Up  [esc] Cancel"))
}

func (a *App) renderAlert() string {
	body := labelStyle.Render(a.alert.title) + "\n" + a.alert.message + "\n\n" + mutedStyle.Render("press any key")
	return alertStyle.Render(body)
}

// formatPrice shows parseable prices with two decimals and anything else verbatim.
func formatPrice(currency, raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return currency + raw
	}
	return currency + d.StringFixed(2)
}
