// Package overlay is the text shown on top of the rain: a user-typed message
// that survives restarts, and short-lived prompts.
package overlay

import (
	"log"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Param is the name of the startup parameter that seeds the message.
	Param = "msg"
	// StoreKey is the key the message is persisted under.
	StoreKey = "coderain-msg"
)

// Store is a persisted key-value slot.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Key identifies the keystrokes the message reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyRune
	KeyBackspace
	KeyDelete
	KeyEscape
)

// Message is the persisted overlay text. A nil *Message is a disabled
// overlay: every method is a no-op.
type Message struct {
	text  string
	store Store
}

// NewMessage returns a Message mirrored into store. A nil store keeps the
// message in memory only.
func NewMessage(store Store) *Message {
	return &Message{store: store}
}

// Load applies the first non-empty of initial and the stored value.
func (m *Message) Load(initial string) {
	if m == nil {
		return
	}
	if initial == "" && m.store != nil {
		initial, _ = m.store.Get(StoreKey)
	}
	m.Apply(initial)
}

// Reload picks up the stored value without writing it back. A stored value
// matching the current text is an echo of our own save and keeps any
// trailing space being typed.
func (m *Message) Reload() {
	if m == nil || m.store == nil {
		return
	}
	v, _ := m.store.Get(StoreKey)
	if !utf8.ValidString(v) || v == strings.TrimSpace(m.text) {
		return
	}
	m.text = strings.TrimSpace(v)
}

// Text returns the current message.
func (m *Message) Text() string {
	if m == nil {
		return ""
	}
	return m.text
}

// Apply replaces the message with s trimmed and persists it. An empty
// message removes the stored entry. Invalid UTF-8 is ignored.
func (m *Message) Apply(s string) {
	if m == nil || !utf8.ValidString(s) {
		return
	}
	m.set(strings.TrimSpace(s))
}

// set keeps a trailing space on screen so words can be typed one key at a
// time; the stored value is always fully trimmed.
func (m *Message) set(s string) {
	m.text = strings.TrimLeftFunc(s, unicode.IsSpace)
	m.persist()
}

// Clear empties the message.
func (m *Message) Clear() {
	m.Apply("")
}

// Backspace removes the last character.
func (m *Message) Backspace() {
	if m == nil || m.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.text)
	m.set(m.text[:len(m.text)-size])
}

// Input appends a single printable character.
func (m *Message) Input(r rune) {
	if m == nil || !unicode.IsPrint(r) {
		return
	}
	m.set(m.text + string(r))
}

// HandleKey applies a keystroke and reports whether it was consumed.
func (m *Message) HandleKey(k Key, r rune) bool {
	if m == nil {
		return false
	}
	switch k {
	case KeyRune:
		if !unicode.IsPrint(r) {
			return false
		}
		m.Input(r)
	case KeyBackspace, KeyDelete:
		m.Backspace()
	case KeyEscape:
		m.Clear()
	default:
		return false
	}
	return true
}

func (m *Message) persist() {
	if m.store == nil {
		return
	}
	var err error
	if v := strings.TrimSpace(m.text); v == "" {
		err = m.store.Delete(StoreKey)
	} else {
		err = m.store.Set(StoreKey, v)
	}
	if err != nil {
		log.Printf("overlay: persist message: %v", err)
	}
}
