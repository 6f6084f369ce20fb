package otpinput

import (
	"fmt"
	"strings"
	"sync"
)

// Controller owns the canonical OTP value and its per-box slots. It is the
// sole writer of the joined value during typing; the host writes it back only
// through OnExternalValueChanged.
//
// All operations are synchronous and non-blocking. Bubble Tea delivers events
// serially so a single-model host never contends on the mutex; it exists for
// hosts that validate or reset from another goroutine.
type Controller struct {
	mu       sync.Mutex
	slots    []Slot
	count    int
	onChange func(string)
}

// NewController builds a controller with count boxes. Box i is seeded from
// character i of initial when present; a long initial is truncated and a
// short one leaves the remaining boxes empty.
func NewController(initial string, count int) (*Controller, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count %d: %w", count, ErrInvalidConfiguration)
	}
	c := &Controller{
		slots: make([]Slot, count),
		count: count,
	}
	c.seed(initial)
	return c, nil
}

// SetOnChange registers the callback fired with the joined value after every
// committed box change. It is not fired for external value changes; that
// write came from the host, echoing it back would loop.
func (c *Controller) SetOnChange(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Count returns the fixed number of boxes.
func (c *Controller) Count() int {
	return c.count
}

// Value returns the joined OTP string. Empty slots contribute nothing, so the
// result may be shorter than the box count while entry is in progress.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return joinSlots(c.slots)
}

// Slots returns a copy of the current slot contents.
func (c *Controller) Slots() []Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Complete reports whether every box holds a character.
func (c *Controller) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.slots {
		if s.Value == "" {
			return false
		}
	}
	return true
}

// OnBoxChanged processes a raw text-change event reported on box index,
// commits the resulting slots, publishes the new joined value, and returns
// the focus directive the host should honor.
func (c *Controller) OnBoxChanged(index int, raw string) (FocusDirective, error) {
	c.mu.Lock()
	next, directive, err := Distribute(index, raw, c.slots, c.count)
	if err != nil {
		c.mu.Unlock()
		return FocusNone(), fmt.Errorf("box %d changed: %w", index, err)
	}
	c.slots = next
	fn := c.onChange
	value := joinSlots(c.slots)
	c.mu.Unlock()

	if fn != nil {
		fn(value)
	}
	return directive, nil
}

// OnPasted processes an explicit paste of raw starting at box index. A paste
// is not a raw box event, so the two-character echo rule never applies: every
// pasted character fills a box left to right and whatever does not fit is
// discarded. No focus directive is issued; the host owns the post-paste focus
// policy.
func (c *Controller) OnPasted(index int, raw string) (FocusDirective, error) {
	if index < 0 || index >= c.count {
		return FocusNone(), fmt.Errorf("paste at box %d with count %d: %w", index, c.count, ErrInvalidIndex)
	}

	c.mu.Lock()
	next := make([]Slot, len(c.slots))
	copy(next, c.slots)
	fillForward(next, index, []rune(raw), c.count)
	c.slots = next
	fn := c.onChange
	value := joinSlots(c.slots)
	c.mu.Unlock()

	if fn != nil {
		fn(value)
	}
	return FocusNone(), nil
}

// OnExternalValueChanged reseeds every box from value, using the same
// truncate/pad rule as NewController. An empty value models an external
// reset: all boxes clear and the directive asks for focus on box 0 so entry
// restarts. A non-empty value requests no focus change.
//
// The OnChange callback is deliberately not fired.
func (c *Controller) OnExternalValueChanged(value string) FocusDirective {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed(value)
	if value == "" {
		return FocusTo(0)
	}
	return FocusNone()
}

// OnAdvanceRequested handles an input-method "next" action on box index. It
// mutates nothing and returns a directive for the following box, or none when
// index is already the last box.
func (c *Controller) OnAdvanceRequested(index int) (FocusDirective, error) {
	if index < 0 || index >= c.count {
		return FocusNone(), fmt.Errorf("advance from box %d with count %d: %w", index, c.count, ErrInvalidIndex)
	}
	return advanceFrom(index, c.count), nil
}

// seed overwrites every slot from value. Caller holds the mutex (or is the
// constructor).
func (c *Controller) seed(value string) {
	runes := []rune(value)
	for i := range c.slots {
		if i < len(runes) {
			c.slots[i].Value = string(runes[i])
		} else {
			c.slots[i].Value = ""
		}
	}
}

func joinSlots(slots []Slot) string {
	var b strings.Builder
	for _, s := range slots {
		b.WriteString(s.Value)
	}
	return b.String()
}
