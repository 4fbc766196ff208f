// Package jsonpatch applies RFC 6902 JSON Patch documents onto typed records.
//
// A record is marshalled to JSON, patched, then decoded back strictly so that
// operations addressing unknown fields or carrying values of the wrong type
// are rejected instead of being silently dropped.
package jsonpatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	evanjsonpatch "github.com/evanphx/json-patch/v5"
)

var (
	ErrEmptyPatch     = errors.New("patch document is empty")
	ErrMalformedPatch = errors.New("malformed patch document")
	ErrInvalidPatch   = errors.New("invalid patch")
)

// immutablePaths are the record fields a patch may never touch.
var immutablePaths = []string{"/id"}

// Patch is an ordered list of decoded patch operations
type Patch = evanjsonpatch.Patch

// Decode parses a JSON Patch document. An empty body or a JSON null yields ErrEmptyPatch.
func Decode(data []byte) (Patch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyPatch
	}

	patch, err := evanjsonpatch.DecodePatch(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
	}
	return patch, nil
}

// Apply applies the patch onto target, which must be a non-nil pointer to a struct.
// On error target is left untouched.
func Apply(patch Patch, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidPatch)
	}

	if err := checkImmutable(patch); err != nil {
		return err
	}

	original, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	patched, err := patch.Apply(original)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	merged := reflect.New(rv.Elem().Type())
	decoder := json.NewDecoder(bytes.NewReader(patched))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(merged.Interface()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	rv.Elem().Set(merged.Elem())
	return nil
}

func checkImmutable(patch Patch) error {
	for i, op := range patch {
		path, err := op.Path()
		if err != nil {
			return fmt.Errorf("%w: operation %d: %v", ErrInvalidPatch, i, err)
		}
		if isImmutable(path) {
			return fmt.Errorf("%w: operation %d: path %s cannot be modified", ErrInvalidPatch, i, path)
		}

		if op.Kind() == "move" {
			from, err := op.From()
			if err != nil {
				return fmt.Errorf("%w: operation %d: %v", ErrInvalidPatch, i, err)
			}
			if isImmutable(from) {
				return fmt.Errorf("%w: operation %d: path %s cannot be moved", ErrInvalidPatch, i, from)
			}
		}
	}
	return nil
}

func isImmutable(path string) bool {
	for _, p := range immutablePaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
