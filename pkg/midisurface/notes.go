package midisurface

import (
	"errors"
	"fmt"
	"sort"

	"github.com/RBSystems/vcpanel-go/pkg/panel"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// Errors.
var (
	ErrDuplicateNote = errors.New("note mapped twice")
	ErrNoPort        = errors.New("no matching MIDI port")
	ErrNotAttached   = errors.New("not attached")
)

// DefaultNotes is the control layout for an 8x8 pad grid in programmer
// mode: the direction pad on the left, zoom and focus beside it and the
// preset buttons along the bottom row.
var DefaultNotes = map[string]uint8{
	"up":         72,
	"left":       61,
	"center":     62,
	"right":      63,
	"down":       52,
	"zoom-in":    75,
	"zoom-out":   65,
	"focus-near": 77,
	"focus-far":  67,
	"autofocus":  57,
	"preset-1":   11,
	"preset-2":   12,
	"preset-3":   13,
	"preset-4":   14,
	"preset-5":   15,
	"preset-6":   16,
	"preset-7":   17,
	"preset-8":   18,
}

// NoteMap maps note numbers to panel joins.
type NoteMap map[uint8]signal.Join

// ResolveNotes turns a name to note map into a NoteMap using the panel's
// control names. A nil or empty names map uses DefaultNotes; presets beyond
// presetCount are skipped.
func ResolveNotes(names map[string]uint8, joins panel.Joins, presetCount int) (NoteMap, error) {
	explicit := len(names) > 0
	if !explicit {
		names = DefaultNotes
	}
	named := joins.Named(presetCount)

	// Sorted so errors are stable.
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	notes := make(NoteMap, len(names))
	owner := make(map[uint8]string, len(names))
	for _, name := range keys {
		note := names[name]
		if note > 127 {
			return nil, fmt.Errorf("note %d for %q: out of range", note, name)
		}
		join, ok := named[name]
		if !ok {
			if !explicit {
				continue
			}
			var err error
			if join, err = joins.ByName(name, presetCount); err != nil {
				return nil, err
			}
		}
		if prev, dup := owner[note]; dup {
			return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateNote, note, prev, name)
		}
		owner[note] = name
		notes[note] = join
	}
	return notes, nil
}

// Notes returns the mapped note numbers, sorted.
func (m NoteMap) Notes() []uint8 {
	out := make([]uint8, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
