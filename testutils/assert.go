package testutils

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func AssertEqual[T comparable](t *testing.T, a, b T) {
	t.Helper()
	if a != b {
		t.Fatalf("Expected: %v, got: %v", b, a)
	}
}

func AssertSliceEqual[T comparable](t *testing.T, a, b []T) {
	t.Helper()
	if !slices.Equal(a, b) {
		t.Fatalf("Expected: %v, got: %v", b, a)
	}
}

func AssertNil(t *testing.T, v any) {
	t.Helper()
	if v != nil {
		t.Fatalf("Expected value to be nil, but got %v", v)
	}
}

func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("Expected error to wrap '%v' got '%v'", target, err)
	}
}

func AssertContains(t *testing.T, result string, tokens ...string) {
	t.Helper()
	for _, token := range tokens {
		if !strings.Contains(result, token) {
			t.Fatalf("Wanted result to contain '%s' got '%s'", token, result)
			return
		}
	}
}

func AssertNotContains(t *testing.T, result string, tokens ...string) {
	t.Helper()
	for _, token := range tokens {
		if strings.Contains(result, token) {
			t.Fatalf("Wanted result not to contain '%s' got '%s'", token, result)
			return
		}
	}
}
