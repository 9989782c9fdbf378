package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// InstructionsKind tags which shape an Instructions value holds
type InstructionsKind int

const (
	InstructionsText InstructionsKind = iota
	InstructionsSteps
)

// Instructions holds recipe instructions delivered either as a single
// string or as an ordered list of steps.
type Instructions struct {
	Kind  InstructionsKind
	Text  string
	Steps []string
}

// TextInstructions returns single-string instructions
func TextInstructions(text string) Instructions {
	return Instructions{Kind: InstructionsText, Text: text}
}

// StepInstructions returns step-list instructions
func StepInstructions(steps ...string) Instructions {
	return Instructions{Kind: InstructionsSteps, Steps: steps}
}

// Flatten renders the instructions as one string, joining steps with sep
func (i Instructions) Flatten(sep string) string {
	if i.Kind == InstructionsSteps {
		return strings.Join(i.Steps, sep)
	}
	return i.Text
}

// IsZero reports whether no instructions are present
func (i Instructions) IsZero() bool {
	if i.Kind == InstructionsSteps {
		return len(i.Steps) == 0
	}
	return i.Text == ""
}

// MarshalJSON encodes the instructions in their original shape
func (i Instructions) MarshalJSON() ([]byte, error) {
	if i.Kind == InstructionsSteps {
		steps := i.Steps
		if steps == nil {
			steps = []string{}
		}
		return json.Marshal(steps)
	}
	return json.Marshal(i.Text)
}

// UnmarshalJSON decodes either a JSON string or a JSON array of strings
func (i *Instructions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*i = Instructions{}
		return nil
	case trimmed[0] == '[':
		var steps []string
		if err := json.Unmarshal(trimmed, &steps); err != nil {
			return fmt.Errorf("invalid instruction steps: %w", err)
		}
		*i = StepInstructions(steps...)
		return nil
	default:
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("invalid instructions: %w", err)
		}
		*i = TextInstructions(text)
		return nil
	}
}

// Value implements the driver.Valuer interface
func (i Instructions) Value() (driver.Value, error) {
	b, err := i.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (i *Instructions) Scan(value interface{}) error {
	if value == nil {
		*i = Instructions{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported instructions column type %T", value)
	}

	return i.UnmarshalJSON(data)
}
