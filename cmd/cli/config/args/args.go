package args

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucax88x/mpvtick/internal/fifo"
)

type Event = string

const (
	// Trigger shows a modality right away.
	Trigger Event = "trigger"
	// Restore puts back the style a modality overrode on its last render.
	Restore Event = "restore"
)

const argsPrefix = "args: "

// In is a request sent to a running mpvtick through its fifo.
type In struct {
	// the modality name
	Name  string `json:"name"`
	Event string `json:"event"`
}

func FromEvent(msg string) (*In, error) {
	argsStart := strings.Index(msg, argsPrefix)
	if argsStart == -1 {
		return nil, fmt.Errorf("args: could not find args prefix in message: %s", msg)
	}

	argsJSON := strings.TrimSpace(msg[argsStart+len(argsPrefix):])

	var args *In
	err := json.Unmarshal([]byte(argsJSON), &args)

	if err != nil {
		return nil, fmt.Errorf("args: could not deserialize data: %w. Got: %s", err, argsJSON)
	}

	if args == nil {
		return nil, fmt.Errorf("args: deserialized data is nil. Got: %s", argsJSON)
	}

	if args.Name == "" {
		return nil, fmt.Errorf("args: missing modality name. Got: %s", argsJSON)
	}

	if args.Event == "" {
		args.Event = strings.TrimSpace(msg[:argsStart])
	}

	return args, nil
}

// BuildEvent renders the fifo message asking for event on the named modality.
func BuildEvent(event Event, name string) (string, error) {
	data := &In{
		Name:  name,
		Event: event,
	}

	bytes, err := json.Marshal(data)

	if err != nil {
		return "", fmt.Errorf("args: could not serialize data. %w", err)
	}

	return fmt.Sprintf("%s %s%s%c", event, argsPrefix, bytes, fifo.Separator), nil
}
