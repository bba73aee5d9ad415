package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg time.Time

// settleMsg fires once the resize debounce wait has passed. Only the
// generation of the latest resize relays out.
type settleMsg struct {
	gen uint64
}

type storeChangedMsg struct{}

// StoreChanged is sent by the store watcher when the saved message changed
// on disk.
func StoreChanged() tea.Msg { return storeChangedMsg{} }

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func settleCmd(gen uint64, wait time.Duration) tea.Cmd {
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return settleMsg{gen: gen}
	})
}
