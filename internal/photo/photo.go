// Package photo is the photo provider: a terminal file picker that yields an
// opaque file:// reference or nothing.
package photo

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// FromPath turns a local file path into a file:// reference.
func FromPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// DisplayName returns the last path element of a reference for compact display.
func DisplayName(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme == "file" {
		return filepath.Base(filepath.FromSlash(u.Path))
	}
	return ref
}

// Allowed reports whether path has one of exts, compared case-insensitively.
func Allowed(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// SelectedMsg is emitted when a request finishes. OK is false when the user
// backed out without choosing a file.
type SelectedMsg struct {
	Ref string
	OK  bool
}

// Picker wraps the bubbles file picker for a single photo request.
type Picker struct {
	fp   filepicker.Model
	exts []string
}

// NewPicker starts in dir and only offers files with one of exts.
func NewPicker(dir string, exts []string) Picker {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = append([]string{}, exts...)
	fp.ShowHidden = false
	return Picker{fp: fp, exts: exts}
}

func (p Picker) Init() tea.Cmd { return p.fp.Init() }

// Update forwards msg to the file picker. The returned cmd yields a
// SelectedMsg once a file is chosen or the request is cancelled with esc.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return p, selected("", false)
	}
	var cmd tea.Cmd
	p.fp, cmd = p.fp.Update(msg)
	if ok, path := p.fp.DidSelectFile(msg); ok && Allowed(path, p.exts) {
		return p, selected(FromPath(path), true)
	}
	return p, cmd
}

func (p Picker) View() string { return p.fp.View() }

// Dir is the directory currently shown.
func (p Picker) Dir() string { return p.fp.CurrentDirectory }

func selected(ref string, ok bool) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{Ref: ref, OK: ok} }
}
