package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactSecrets(t *testing.T) {
	got := redact([]interface{}{"api_key", "sk-123", "model", "gemma", "jwtToken", "abc"})
	want := []interface{}{"api_key", redacted, "model", "gemma", "jwtToken", redacted}
	if len(got) != len(want) {
		t.Fatalf("len: want=%d got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kv[%d]: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestRedactOddLength(t *testing.T) {
	got := redact([]interface{}{"rating", 5, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("unexpected kvs: %v", got)
	}
}

func TestRedactLeavesInputUntouched(t *testing.T) {
	in := []interface{}{"password", "hunter2"}
	redact(in)
	if in[1] != "hunter2" {
		t.Fatalf("caller slice mutated: %v", in)
	}
}

func TestWithRedactsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("component", "test")

	log.Warn("login failed", "password", "hunter2", "user", "admin")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: want=1 got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["password"] != redacted || fields["user"] != "admin" || fields["component"] != "test" {
		t.Fatalf("fields: %v", fields)
	}
}

func TestIsProduction(t *testing.T) {
	for mode, want := range map[string]bool{"prod": true, " Production ": true, "dev": false, "": false} {
		if got := IsProduction(mode); got != want {
			t.Fatalf("IsProduction(%q): want=%v got=%v", mode, want, got)
		}
	}
}
