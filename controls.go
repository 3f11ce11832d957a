package markerboard

import (
	"sync"
	"unicode/utf8"
)

// Controls is the side-channel UI the session reads: the mode selector, the
// label field and the background URL field.
type Controls interface {
	Mode() Mode
	LabelText() string
	BackgroundURL() string
	SetBackgroundURL(url string)
}

// Field identifies an editable text field.
type Field uint8

const (
	FieldLabel      Field = iota // text stamped by LABEL clicks
	FieldBackground              // background image URL
)

// FormControls is an in-memory Controls edited from the keyboard. It is
// safe for use from the game loop and the poll goroutine at once.
type FormControls struct {
	mu    sync.Mutex
	mode  Mode
	label string
	bgURL string
	focus Field
}

// Mode implements Controls.
func (f *FormControls) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetMode selects the active mode.
func (f *FormControls) SetMode(m Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = m
}

// LabelText implements Controls.
func (f *FormControls) LabelText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.label
}

// SetLabelText replaces the label field.
func (f *FormControls) SetLabelText(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label = s
}

// BackgroundURL implements Controls.
func (f *FormControls) BackgroundURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bgURL
}

// SetBackgroundURL implements Controls.
func (f *FormControls) SetBackgroundURL(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bgURL = url
}

// Focus returns the field receiving typed text.
func (f *FormControls) Focus() Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focus
}

// CycleFocus moves typing to the other field.
func (f *FormControls) CycleFocus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.focus == FieldLabel {
		f.focus = FieldBackground
	} else {
		f.focus = FieldLabel
	}
}

// Type appends runes to the focused field.
func (f *FormControls) Type(rs []rune) {
	if len(rs) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.focused()
	*p += string(rs)
}

// Backspace removes the last rune of the focused field.
func (f *FormControls) Backspace() {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.focused()
	if *p == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(*p)
	*p = (*p)[:len(*p)-size]
}

// focused must be called with mu held.
func (f *FormControls) focused() *string {
	if f.focus == FieldBackground {
		return &f.bgURL
	}
	return &f.label
}
