package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/productcap/internal/catalog"
	"github.com/jask/productcap/internal/config"
	"github.com/jask/productcap/internal/photo"
)

// App is the single-screen product entry form.
type App struct {
	ctx     context.Context
	session *catalog.Session
	cfg     config.Config
	log     zerolog.Logger
	keys    keyMap

	state  appState
	modal  modalState
	alert  alert
	inputs []textinput.Model
	focus  int
	picker photo.Picker
	status string
	width  int
}

type appState string

const (
	viewForm   appState = "form"
	viewPicker appState = "picker"
)

type modalState string

const (
	modalNone  modalState = ""
	modalAlert modalState = "alert"
)

const (
	fieldName = iota
	fieldPrice
)

type alert struct {
	title   string
	message string
}

type keyMap struct {
	Quit  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Photo key.Binding
	Add   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Next:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Photo: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "select photo")),
		Add:   key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "add product")),
	}
}

// New builds the form around an already constructed session.
func New(ctx context.Context, cfg config.Config, session *catalog.Session, logger zerolog.Logger) *App {
	name := textinput.New()
	name.Placeholder = "Product Name"
	name.Prompt = "Name:  "
	name.CharLimit = 120
	name.Focus()

	price := textinput.New()
	price.Placeholder = "Price"
	price.Prompt = "Price: "
	price.CharLimit = 32

	return &App{
		ctx:     ctx,
		session: session,
		cfg:     cfg,
		log:     logger,
		keys:    defaultKeys(),
		state:   viewForm,
		inputs:  []textinput.Model{name, price},
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case photo.SelectedMsg:
		a.session.Draft.AttachPhotoResult(m.Ref, m.OK)
		a.state = viewForm
		if m.OK {
			a.status = "photo attached: " + photo.DisplayName(m.Ref)
			a.log.Debug().Str("ref", m.Ref).Msg("photo attached")
		} else {
			a.status = "no photo selected"
		}
		return a, a.focusInput(a.focus)
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.modal == modalAlert {
			// any key dismisses the alert and does nothing else
			a.modal = modalNone
			a.alert = alert{}
			return a, nil
		}
		if a.state == viewForm {
			return a.handleFormKey(m)
		}
	}

	if a.state == viewPicker {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Next):
		return a, a.focusInput((a.focus + 1) % len(a.inputs))
	case key.Matches(m, a.keys.Prev):
		return a, a.focusInput((a.focus + len(a.inputs) - 1) % len(a.inputs))
	case key.Matches(m, a.keys.Photo):
		return a, a.openPicker()
	case key.Matches(m, a.keys.Add):
		a.addProduct()
		return a, nil
	}

	if a.focus == fieldPrice && !numericKey(m) {
		return a, nil
	}
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(m)
	a.syncDraft()
	return a, cmd
}

// syncDraft copies the focused input into the draft.
func (a *App) syncDraft() {
	switch a.focus {
	case fieldName:
		if v := a.inputs[fieldName].Value(); v != a.session.Draft.Value().Name {
			a.session.Draft.SetName(v)
		}
	case fieldPrice:
		if v := a.inputs[fieldPrice].Value(); v != a.session.Draft.Value().Price {
			a.session.Draft.SetPrice(v)
		}
	}
}

func (a *App) focusInput(i int) tea.Cmd {
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
	a.focus = i
	return a.inputs[i].Focus()
}

func (a *App) openPicker() tea.Cmd {
	a.picker = photo.NewPicker(a.cfg.Photo.Dir, a.cfg.Photo.Extensions)
	a.state = viewPicker
	a.status = ""
	cmds := []tea.Cmd{a.picker.Init()}
	if a.width > 0 {
		// the picker sizes itself from the window
		size := tea.WindowSizeMsg{Width: a.width, Height: pickerHeight}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

func (a *App) addProduct() {
	draft := a.session.Draft.Value()
	similar, hasSimilar := similarName(a.session.Store.Items(), draft.Name)

	if err := a.session.Commit(a.ctx); err != nil {
		a.showError(err)
		return
	}

	for i := range a.inputs {
		a.inputs[i].SetValue("")
	}
	a.focusInput(fieldName)

	store := a.session.Store
	a.status = fmt.Sprintf("added %s (%d/%d)", draft.Name, store.Size(), catalog.Capacity)
	if store.Full() {
		a.status += " - maximum reached"
	}
	if hasSimilar {
		a.status += fmt.Sprintf(" - similar to existing %q", similar)
	}
}

func (a *App) showError(err error) {
	title, message, ok := catalog.Alert(err)
	if !ok {
		a.log.Error().Err(err).Msg("unexpected commit error")
		title, message = "Error", err.Error()
	}
	var incomplete *catalog.IncompleteRecordError
	if errors.As(err, &incomplete) {
		a.status = "missing: " + strings.Join(incomplete.Missing, ", ")
	} else {
		a.status = ""
	}
	a.modal = modalAlert
	a.alert = alert{title: title, message: message}
}

// numericKey mirrors a numeric keypad: digits and decimal separators only.
func numericKey(m tea.KeyMsg) bool {
	if m.Type != tea.KeyRunes {
		return true
	}
	for _, r := range m.Runes {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

const similarDistance = 2

// similarName finds an existing record whose name is within a small edit
// distance of name. It is advisory only.
func similarName(items []catalog.Record, name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	for _, it := range items {
		if levenshtein.ComputeDistance(n, strings.ToLower(strings.TrimSpace(it.Name))) <= similarDistance {
			return it.Name, true
		}
	}
	return "", false
}
