package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		var s sample
		if err := UnmarshalStrict([]byte("name: hello\ncount: 3\n"), &s); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if s.Name != "hello" || s.Count != 3 {
			t.Errorf("got %+v", s)
		}
	})

	t.Run("unknown field fails", func(t *testing.T) {
		var s sample
		if err := UnmarshalStrict([]byte("name: x\nextra: y\n"), &s); err == nil {
			t.Error("UnmarshalStrict() error = nil, want unknown-field failure")
		}
	})

	t.Run("invalid YAML fails", func(t *testing.T) {
		var s sample
		if err := UnmarshalStrict([]byte("name: [broken\n"), &s); err == nil {
			t.Error("UnmarshalStrict() error = nil, want parse failure")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		var s sample
		if err := UnmarshalStrict(nil, &s); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("UnmarshalStrict() error = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		if err := UnmarshalStrict([]byte("name: x"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("UnmarshalStrict() error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		var s sample
		data := []byte("name: " + strings.Repeat("x", MaxInputSize))
		if err := UnmarshalStrict(data, &s); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
		}
	})
}
