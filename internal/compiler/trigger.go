package compiler

import (
	"fmt"
	"strings"
)

// Trigger selects the event that opens each episode.
type Trigger int

const (
	// TriggerNone starts episodes on the DSP clock alone.
	TriggerNone Trigger = iota
	// TriggerIn waits for a rising edge on the trigger input.
	TriggerIn
	// TriggerOut pulses the trigger output for other equipment.
	TriggerOut
)

var triggerNames = [...]string{
	TriggerNone: "none",
	TriggerIn:   "in",
	TriggerOut:  "out",
}

// String implements fmt.Stringer.
func (t Trigger) String() string {
	if t >= 0 && int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// ParseTrigger maps "none", "in" or "out" (any case) to a Trigger.
// An empty string means TriggerNone.
func ParseTrigger(s string) (Trigger, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TriggerNone, nil
	case "in":
		return TriggerIn, nil
	case "out":
		return TriggerOut, nil
	}
	return TriggerNone, fmt.Errorf("unknown trigger %q (want none, in or out)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Trigger) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Trigger) UnmarshalText(b []byte) error {
	v, err := ParseTrigger(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
