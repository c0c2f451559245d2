package observer

import (
	"fmt"
)

// CallbackAction selects what happens to the callback when an Observer subscribes.
// It does not affect later notifications.
type CallbackAction int

const (
	// Trigger invokes the callback once with the current state while subscribing.
	Trigger CallbackAction = iota
	// Suppress subscribes silently; the callback only sees future changes.
	Suppress
)

var callbackActionNames = map[CallbackAction]string{
	Trigger:  "Trigger",
	Suppress: "Suppress",
}

func (a CallbackAction) String() string {
	if name, ok := callbackActionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("CallbackAction(%d)", int(a))
}

// ParseCallbackAction returns the CallbackAction named by s.
func ParseCallbackAction(s string) (CallbackAction, error) {
	for action, name := range callbackActionNames {
		if name == s {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown callback action %q", s)
}
