// Package otpinput provides a one-time-password input widget for Bubble Tea
// applications: a row of single-character boxes that behaves as one logical
// input field.
//
// The package splits into three layers. Distribute is the pure algorithm that
// maps a raw text-change event on one box to new box contents and a focus
// directive. Controller owns the canonical OTP string and drives Distribute.
// Model wraps a Controller in a Bubble Tea component ready to embed in a
// larger program.
package otpinput

import "fmt"

// Slot holds the contents of one character box. Value is empty or a single
// character.
type Slot struct {
	Value string
}

// FocusDirective tells the host which box, if any, should receive input focus
// after an update.
type FocusDirective struct {
	target int
	ok     bool
}

// FocusTo returns a directive requesting focus on box index.
func FocusTo(index int) FocusDirective {
	return FocusDirective{target: index, ok: true}
}

// FocusNone returns a directive requesting no focus change.
func FocusNone() FocusDirective {
	return FocusDirective{}
}

// Target returns the requested box index. The second return is false when the
// directive requests no focus change.
func (d FocusDirective) Target() (int, bool) {
	return d.target, d.ok
}

func (d FocusDirective) String() string {
	if !d.ok {
		return "focus:none"
	}
	return fmt.Sprintf("focus:%d", d.target)
}

// Distribute computes the slot updates and focus transition for a raw
// text-change event reported on box index. It never mutates slots; the
// returned slice is a fresh copy.
//
// The event's meaning depends on how many characters the input surface
// reported:
//
//   - one character: the box was replaced; focus advances to the next box.
//   - zero characters: the box was cleared; focus retreats to the previous box.
//   - two characters: character-by-character surfaces sometimes echo the
//     pre-existing character concatenated with the new one in a single event.
//     The first character is the stale echo and is dropped. Hosts that can
//     tell a genuine paste apart from a raw box event must route it through
//     Controller.OnPasted instead, which never applies this rule.
//   - more than two characters: a paste. Characters fill boxes left to right
//     starting at index; whatever does not fit is discarded. No focus
//     directive is issued; the caller owns the post-paste focus policy.
func Distribute(index int, raw string, slots []Slot, count int) ([]Slot, FocusDirective, error) {
	if count <= 0 {
		return nil, FocusNone(), fmt.Errorf("count %d: %w", count, ErrInvalidConfiguration)
	}
	if index < 0 || index >= count {
		return nil, FocusNone(), fmt.Errorf("index %d with count %d: %w", index, count, ErrInvalidIndex)
	}

	next := make([]Slot, len(slots))
	copy(next, slots)

	runes := []rune(raw)
	switch n := len(runes); {
	case n == 0:
		next[index].Value = ""
		if index > 0 {
			return next, FocusTo(index - 1), nil
		}
		return next, FocusNone(), nil

	case n == 1:
		next[index].Value = string(runes[0])
		return next, advanceFrom(index, count), nil

	case n == 2:
		next[index].Value = string(runes[1])
		return next, advanceFrom(index, count), nil

	default:
		fillForward(next, index, runes, count)
		return next, FocusNone(), nil
	}
}

// fillForward writes runes into consecutive slots starting at index,
// discarding whatever does not fit.
func fillForward(slots []Slot, index int, runes []rune, count int) {
	for i, r := range runes {
		if index+i >= count {
			break
		}
		slots[index+i].Value = string(r)
	}
}

func advanceFrom(index, count int) FocusDirective {
	if index < count-1 {
		return FocusTo(index + 1)
	}
	return FocusNone()
}
