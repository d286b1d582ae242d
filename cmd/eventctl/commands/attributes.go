package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KirkDiggler/eventpublisher/internal/event"
)

// parseAttributes turns key=value arguments into attributes, in argument
// order. Values that are valid JSON are decoded, anything else is a string.
func parseAttributes(args []string) (*event.Attributes, error) {
	attrs := event.NewAttributes(nil)

	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("attribute %q must look like key=value", arg)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		attrs.Set(key, value)
	}

	return attrs, nil
}
