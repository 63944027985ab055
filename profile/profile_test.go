package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithDir("/tmp/prof"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Dir: "/tmp/prof", Quiet: true}
	if p != want {
		t.Fatalf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
	}{
		{"empty mode", New()},
		{"unknown mode", New(WithMode("bogus"), WithDir(t.TempDir()), WithQuiet(true))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.p.Start()
			if _, ok := s.(nop); !ok {
				t.Fatalf("Start() = %T, want no-op", s)
			}

			s.Stop()
		})
	}
}

func TestModes_Sorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Fatalf("Modes() = %v, not sorted", m)
	}
}
