package event

import (
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	if Close.String() != "Close" || Shutdown.String() != "Shutdown" {
		t.Fatalf("unexpected kind names: %s %s", Close, Shutdown)
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestEventString(t *testing.T) {
	if got := Pressed(KeyQ).String(); got != "KeyDown(Q)" {
		t.Fatalf("expected KeyDown(Q), got %q", got)
	}
	if got := Of(Resize).String(); got != "Resize" {
		t.Fatalf("expected Resize, got %q", got)
	}
}

func TestEveryKeyHasName(t *testing.T) {
	for k := KeyUnknown; k < keyCount; k++ {
		if strings.HasPrefix(k.String(), "Key(") {
			t.Fatalf("key %d has no name", int(k))
		}
	}
}

func TestKeyFromName(t *testing.T) {
	cases := map[string]Key{
		"a":           KeyA,
		"Z":           KeyZ,
		"7":           Key7,
		"F1":          KeyF1,
		"F12":         KeyF12,
		"Return":      KeyReturn,
		"space":       KeySpace,
		"Shift_L":     KeyLeftShift,
		"exclam":      Key1,
		"bracketleft": KeyLeftBracket,
		"F13":         KeyUnknown,
		"F1x":         KeyUnknown,
		"XF86Audio":   KeyUnknown,
		"":            KeyUnknown,
	}
	for name, want := range cases {
		if got := KeyFromName(name); got != want {
			t.Fatalf("KeyFromName(%q) = %v, want %v", name, got, want)
		}
	}
}
