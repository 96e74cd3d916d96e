package ui

import (
	"testing"

	"classic-snake/input"
)

func TestKeyOrderIsComplete(t *testing.T) {
	m := input.NewMapper()
	seenKeys := make(map[int32]bool)
	seenNames := make(map[string]bool)

	for _, kb := range keyOrder {
		if seenKeys[kb.key] {
			t.Errorf("key %d listed twice", kb.key)
		}
		seenKeys[kb.key] = true
		seenNames[kb.name] = true
		if m.Key(kb.name) == input.ActionNone {
			t.Errorf("key %q has no action", kb.name)
		}
	}

	for name := range input.DefaultBindings() {
		if !seenNames[name] {
			t.Errorf("bound key %q is never polled", name)
		}
	}
}

func TestSteeringKeysComeFirst(t *testing.T) {
	m := input.NewMapper()
	for i, kb := range keyOrder[:10] {
		if !m.Key(kb.name).IsMovement() {
			t.Errorf("keyOrder[%d] = %q, want a steering key", i, kb.name)
		}
	}
}
