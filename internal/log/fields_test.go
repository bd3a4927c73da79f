package log

import (
	"errors"
	"testing"
)

func TestLogFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentScanner).
		WithOperation(OpScan).
		WithCard("c1", "Nubank", 20).
		WithError(errors.New("boom"))

	if f[FieldComponent] != ComponentScanner {
		t.Errorf("component = %v", f[FieldComponent])
	}
	if f[FieldCardID] != "c1" || f[FieldDueDay] != 20 {
		t.Errorf("card fields = %v, %v", f[FieldCardID], f[FieldDueDay])
	}
	if f[FieldError] != "boom" {
		t.Errorf("error field = %v", f[FieldError])
	}

	slice := f.ToSlice()
	if len(slice) != len(f)*2 {
		t.Errorf("ToSlice length = %d, want %d", len(slice), len(f)*2)
	}
}

func TestLogFieldsWithNilError(t *testing.T) {
	f := NewFields().WithError(nil)
	if _, ok := f[FieldError]; ok {
		t.Error("nil error should not add a field")
	}
}

func TestLoggerComponent(t *testing.T) {
	l := New(Config{Component: ComponentHTTP})
	if l.Component() != ComponentHTTP {
		t.Errorf("Component() = %q, want %q", l.Component(), ComponentHTTP)
	}

	scoped := l.WithComponent(ComponentCache)
	if scoped.Component() != ComponentCache {
		t.Errorf("WithComponent() component = %q", scoped.Component())
	}
}
