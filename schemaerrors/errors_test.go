package schemaerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestLoadError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &LoadError{
			Identity: "common.yaml",
			Message:  "invalid syntax",
			Cause:    cause,
		}

		msg := err.Error()
		if msg != "load error for common.yaml: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &LoadError{}
		if err.Error() != "load error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &LoadError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrLoad", func(t *testing.T) {
		err := &LoadError{Message: "test"}
		if !errors.Is(err, ErrLoad) {
			t.Error("LoadError should match ErrLoad")
		}
	})

	t.Run("Is does not match other sentinels", func(t *testing.T) {
		err := &LoadError{}
		if errors.Is(err, ErrReference) {
			t.Error("LoadError should not match ErrReference")
		}
		if errors.Is(err, ErrComposition) {
			t.Error("LoadError should not match ErrComposition")
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error message for normal reference error", func(t *testing.T) {
		err := &ReferenceError{
			Ref:     "#/definitions/does_not_exist",
			RefType: "local",
			Message: "not found",
		}
		want := "unresolvable reference: #/definitions/does_not_exist: not found"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for circular reference", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/circular_ref_chain_1",
			IsCircular: true,
			Chain: []string{
				"annotation.yaml#/circular_ref_chain_1",
				"annotation.yaml#/circular_ref_chain_2",
				"annotation.yaml#/circular_ref_chain_3",
				"annotation.yaml#/circular_ref_chain_1",
			},
		}
		want := "circular reference: #/circular_ref_chain_1 (chain: " +
			"annotation.yaml#/circular_ref_chain_1 -> " +
			"annotation.yaml#/circular_ref_chain_2 -> " +
			"annotation.yaml#/circular_ref_chain_3 -> " +
			"annotation.yaml#/circular_ref_chain_1)"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrReference always", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/x"}
		if !errors.Is(err, ErrReference) {
			t.Error("ReferenceError should match ErrReference")
		}
	})

	t.Run("Is matches ErrCircularReference only when circular", func(t *testing.T) {
		plain := &ReferenceError{Ref: "#/x"}
		if errors.Is(plain, ErrCircularReference) {
			t.Error("non-circular ReferenceError should not match ErrCircularReference")
		}
		circular := &ReferenceError{Ref: "#/x", IsCircular: true}
		if !errors.Is(circular, ErrCircularReference) {
			t.Error("circular ReferenceError should match ErrCircularReference")
		}
	})

	t.Run("As extracts ReferenceError through wrapping", func(t *testing.T) {
		err := fmt.Errorf("resolving property: %w", &ReferenceError{Ref: "#/definitions/x"})
		var refErr *ReferenceError
		if !errors.As(err, &refErr) {
			t.Fatal("errors.As should succeed")
		}
		if refErr.Ref != "#/definitions/x" {
			t.Errorf("unexpected ref: %s", refErr.Ref)
		}
	})
}

func TestCompositionError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &CompositionError{
			Pointer: "annotation.yaml#/allOf/1",
			Keyword: "properties",
			Message: "conflicting definitions",
		}
		want := "composition error at annotation.yaml#/allOf/1 (keyword: properties): conflicting definitions"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrComposition", func(t *testing.T) {
		err := &CompositionError{Message: "test"}
		if !errors.Is(err, ErrComposition) {
			t.Error("CompositionError should match ErrComposition")
		}
		if errors.Is(err, ErrReference) {
			t.Error("CompositionError should not match ErrReference")
		}
	})
}
