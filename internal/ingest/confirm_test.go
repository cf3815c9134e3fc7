package ingest

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_Answers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"\n", true},  // empty defaults to yes
		{"y\n", true},
		{"yes\n", true},
		{"why\n", true}, // any answer containing 'y' proceeds
		{"n\n", false},
		{"no\n", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		c := NewConsole(strings.NewReader(tc.input), &out)

		ok, err := c.Confirm(nil)
		if err != nil {
			t.Errorf("Confirm(%q): %v", tc.input, err)
			continue
		}
		if ok != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, ok, tc.want)
		}
		if !strings.Contains(out.String(), "Is this correct?") {
			t.Errorf("prompt not written for input %q", tc.input)
		}
	}
}

func TestConsole_ClosedInput(t *testing.T) {
	c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
	if _, err := c.Confirm(nil); err == nil {
		t.Fatal("expected error when input is closed")
	}
}

func TestAutoApprove(t *testing.T) {
	ok, err := AutoApprove{}.Confirm(nil)
	if err != nil || !ok {
		t.Fatalf("AutoApprove.Confirm = (%v, %v), want (true, nil)", ok, err)
	}
}
