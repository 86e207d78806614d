package admin

import (
	"fmt"
	"strings"
)

// Action names a maintenance action. The set of actions is closed.
type Action string

const (
	// ActionClearCache drops every persisted consensus message.
	ActionClearCache Action = "clear-cache"
)

// Actions lists every supported action.
func Actions() []Action {
	return []Action{ActionClearCache}
}

// ParseAction parses an action name as given on the command line.
func ParseAction(name string) (Action, error) {
	for _, action := range Actions() {
		if string(action) == strings.TrimSpace(name) {
			return action, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownAction, name, strings.Join(actionNames(), ", "))
}

func actionNames() []string {
	names := make([]string, 0, len(Actions()))
	for _, action := range Actions() {
		names = append(names, string(action))
	}
	return names
}

func (a Action) String() string {
	return string(a)
}
