package utils

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	if got := GetEnv("ECOSORT_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("missing var: want=fallback got=%s", got)
	}
	t.Setenv("ECOSORT_TEST_STR", "set")
	if got := GetEnv("ECOSORT_TEST_STR", "fallback", nil); got != "set" {
		t.Fatalf("set var: want=set got=%s", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	if got := GetEnvAsInt("ECOSORT_TEST_MISSING", 42, nil); got != 42 {
		t.Fatalf("missing var: want=42 got=%d", got)
	}
	t.Setenv("ECOSORT_TEST_INT", "7")
	if got := GetEnvAsInt("ECOSORT_TEST_INT", 42, nil); got != 7 {
		t.Fatalf("set var: want=7 got=%d", got)
	}
	t.Setenv("ECOSORT_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("ECOSORT_TEST_INT", 42, nil); got != 42 {
		t.Fatalf("unparsable var: want=42 got=%d", got)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	if got := GetEnvAsFloat("ECOSORT_TEST_MISSING", 1.5, nil); got != 1.5 {
		t.Fatalf("missing var: want=1.5 got=%v", got)
	}
	t.Setenv("ECOSORT_TEST_FLOAT", "0.25")
	if got := GetEnvAsFloat("ECOSORT_TEST_FLOAT", 1.5, nil); got != 0.25 {
		t.Fatalf("set var: want=0.25 got=%v", got)
	}
	t.Setenv("ECOSORT_TEST_FLOAT", "nope")
	if got := GetEnvAsFloat("ECOSORT_TEST_FLOAT", 1.5, nil); got != 1.5 {
		t.Fatalf("unparsable var: want=1.5 got=%v", got)
	}
}
