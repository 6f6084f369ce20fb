package otpinput

import (
	"errors"
	"testing"
)

func slotsOf(values ...string) []Slot {
	out := make([]Slot, len(values))
	for i, v := range values {
		out[i].Value = v
	}
	return out
}

func slotValues(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Value
	}
	return out
}

func equalSlots(a []Slot, want []string) bool {
	if len(a) != len(want) {
		return false
	}
	for i := range a {
		if a[i].Value != want[i] {
			return false
		}
	}
	return true
}

func TestDistribute_SingleChar(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		raw       string
		slots     []Slot
		wantSlots []string
		wantFocus FocusDirective
	}{
		{
			name:      "first box advances",
			index:     0,
			raw:       "1",
			slots:     slotsOf("", "", "", "", ""),
			wantSlots: []string{"1", "", "", "", ""},
			wantFocus: FocusTo(1),
		},
		{
			name:      "middle box advances",
			index:     2,
			raw:       "7",
			slots:     slotsOf("1", "2", "", "", ""),
			wantSlots: []string{"1", "2", "7", "", ""},
			wantFocus: FocusTo(3),
		},
		{
			name:      "last box stays",
			index:     4,
			raw:       "9",
			slots:     slotsOf("1", "2", "3", "4", ""),
			wantSlots: []string{"1", "2", "3", "4", "9"},
			wantFocus: FocusNone(),
		},
		{
			name:      "overtype replaces",
			index:     1,
			raw:       "8",
			slots:     slotsOf("1", "2", "3", "", ""),
			wantSlots: []string{"1", "8", "3", "", ""},
			wantFocus: FocusTo(2),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, focus, err := Distribute(tc.index, tc.raw, tc.slots, len(tc.slots))
			if err != nil {
				t.Fatalf("Distribute() error = %v", err)
			}
			if !equalSlots(got, tc.wantSlots) {
				t.Errorf("slots = %v, want %v", slotValues(got), tc.wantSlots)
			}
			if focus != tc.wantFocus {
				t.Errorf("focus = %v, want %v", focus, tc.wantFocus)
			}
		})
	}
}

func TestDistribute_Clear(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		slots     []Slot
		wantSlots []string
		wantFocus FocusDirective
	}{
		{
			name:      "middle box retreats",
			index:     2,
			slots:     slotsOf("1", "2", "3", "", ""),
			wantSlots: []string{"1", "2", "", "", ""},
			wantFocus: FocusTo(1),
		},
		{
			name:      "first box has no previous",
			index:     0,
			slots:     slotsOf("1", "", "", "", ""),
			wantSlots: []string{"", "", "", "", ""},
			wantFocus: FocusNone(),
		},
		{
			name:      "clearing an empty box still retreats",
			index:     3,
			slots:     slotsOf("1", "2", "3", "", ""),
			wantSlots: []string{"1", "2", "3", "", ""},
			wantFocus: FocusTo(2),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, focus, err := Distribute(tc.index, "", tc.slots, len(tc.slots))
			if err != nil {
				t.Fatalf("Distribute() error = %v", err)
			}
			if !equalSlots(got, tc.wantSlots) {
				t.Errorf("slots = %v, want %v", slotValues(got), tc.wantSlots)
			}
			if focus != tc.wantFocus {
				t.Errorf("focus = %v, want %v", focus, tc.wantFocus)
			}
		})
	}
}

// A two-character event is the input surface echoing the stale character
// before the new one; it must behave exactly like typing the new character
// alone.
func TestDistribute_DoubleCharEcho(t *testing.T) {
	slots := slotsOf("x", "", "", "")

	gotEcho, focusEcho, err := Distribute(0, "xy", slots, 4)
	if err != nil {
		t.Fatalf("Distribute(echo) error = %v", err)
	}
	gotSingle, focusSingle, err := Distribute(0, "y", slots, 4)
	if err != nil {
		t.Fatalf("Distribute(single) error = %v", err)
	}

	if !equalSlots(gotEcho, slotValues(gotSingle)) {
		t.Errorf("echo slots = %v, single slots = %v", slotValues(gotEcho), slotValues(gotSingle))
	}
	if focusEcho != focusSingle {
		t.Errorf("echo focus = %v, single focus = %v", focusEcho, focusSingle)
	}
	if gotEcho[0].Value != "y" {
		t.Errorf("slot 0 = %q, want %q", gotEcho[0].Value, "y")
	}
}

func TestDistribute_Paste(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		raw       string
		slots     []Slot
		wantSlots []string
	}{
		{
			name:      "full paste at origin",
			index:     0,
			raw:       "12345",
			slots:     slotsOf("", "", "", "", ""),
			wantSlots: []string{"1", "2", "3", "4", "5"},
		},
		{
			name:      "overflow discarded",
			index:     2,
			raw:       "98765",
			slots:     slotsOf("1", "2", "", "", ""),
			wantSlots: []string{"1", "2", "9", "8", "7"},
		},
		{
			name:      "slots before index untouched",
			index:     1,
			raw:       "abcd",
			slots:     slotsOf("z", "", "", "", ""),
			wantSlots: []string{"z", "a", "b", "c", "d"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, focus, err := Distribute(tc.index, tc.raw, tc.slots, len(tc.slots))
			if err != nil {
				t.Fatalf("Distribute() error = %v", err)
			}
			if !equalSlots(got, tc.wantSlots) {
				t.Errorf("slots = %v, want %v", slotValues(got), tc.wantSlots)
			}
			if focus != FocusNone() {
				t.Errorf("focus = %v, want none", focus)
			}
		})
	}
}

func TestDistribute_DoesNotMutateInput(t *testing.T) {
	slots := slotsOf("1", "2", "", "")
	if _, _, err := Distribute(2, "34567", slots, 4); err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	if !equalSlots(slots, []string{"1", "2", "", ""}) {
		t.Errorf("input slots mutated: %v", slotValues(slots))
	}
}

func TestDistribute_MultibyteRunes(t *testing.T) {
	got, focus, err := Distribute(0, "añb", slotsOf("", ""), 2)
	if err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	if !equalSlots(got, []string{"a", "ñ"}) {
		t.Errorf("slots = %v, want [a ñ]", slotValues(got))
	}
	if focus != FocusNone() {
		t.Errorf("focus = %v, want none", focus)
	}
}

func TestDistribute_InvalidIndex(t *testing.T) {
	slots := slotsOf("", "", "")
	for _, index := range []int{-1, 3, 99} {
		if _, _, err := Distribute(index, "1", slots, 3); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Distribute(index=%d) error = %v, want ErrInvalidIndex", index, err)
		}
	}
}

func TestDistribute_InvalidCount(t *testing.T) {
	for _, count := range []int{0, -5} {
		if _, _, err := Distribute(0, "1", nil, count); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("Distribute(count=%d) error = %v, want ErrInvalidConfiguration", count, err)
		}
	}
}

func TestFocusDirective_String(t *testing.T) {
	if got := FocusTo(3).String(); got != "focus:3" {
		t.Errorf("String() = %q, want %q", got, "focus:3")
	}
	if got := FocusNone().String(); got != "focus:none" {
		t.Errorf("String() = %q, want %q", got, "focus:none")
	}
}
