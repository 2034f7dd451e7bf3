// Package input defines the events a presentation shell sends for a frame:
// named mode actions and raw pointer events on the frame chrome.
package input

import "sort"

// Action names a mode change requested by the shell.
type Action string

const (
	ActionDetach         Action = "detach"
	ActionAttach         Action = "attach"
	ActionMaximize       Action = "maximize"
	ActionRestore        Action = "restore"
	ActionToggleMaximize Action = "toggle-maximize"
	ActionDockLeft       Action = "dock-left"
	ActionDockRight      Action = "dock-right"
	ActionUndock         Action = "undock"
	ActionFocus          Action = "focus"
	ActionClose          Action = "close"
)

var knownActions = map[Action]struct{}{
	ActionDetach:         {},
	ActionAttach:         {},
	ActionMaximize:       {},
	ActionRestore:        {},
	ActionToggleMaximize: {},
	ActionDockLeft:       {},
	ActionDockRight:      {},
	ActionUndock:         {},
	ActionFocus:          {},
	ActionClose:          {},
}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := knownActions[a]
	return a, ok
}

// Actions lists every known action, sorted by name.
func Actions() []Action {
	out := make([]Action, 0, len(knownActions))
	for a := range knownActions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
