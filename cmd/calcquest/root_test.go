package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "2^3", "8")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "correct") || strings.Contains(out, "incorrect") {
		t.Fatalf("expected correct verdict, got %q", out)
	}

	out, err = run(t, "check", "4.002", "4")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "incorrect") {
		t.Fatalf("expected incorrect verdict, got %q", out)
	}
}

func TestAnswerAndStatusPersistAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		out, err := run(t, "--data-dir", dir, "answer", "1.1", "sqrt(16)", "4")
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if i == 4 && !strings.Contains(out, "topic 1.1 mastered!") {
			t.Fatalf("expected mastery on fifth answer, got %q", out)
		}
	}

	out, err := run(t, "--data-dir", dir, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "5 attempted, 5 correct") {
		t.Fatalf("expected totals in status, got %q", out)
	}
	if !strings.Contains(out, "mastered  1 topics") {
		t.Fatalf("expected mastered count in status, got %q", out)
	}
	if !strings.Contains(out, "progress kept in sqlite ("+dir+")") {
		t.Fatalf("expected storage location in status, got %q", out)
	}
}

func TestGotoRejectsUnknownRegion(t *testing.T) {
	if _, err := run(t, "--storage", "memory", "--data-dir", t.TempDir(), "goto", "atlantis"); err == nil {
		t.Fatalf("expected unknown region error")
	}
}

func TestInvalidStorageFlag(t *testing.T) {
	if _, err := run(t, "--storage", "redis", "check", "1", "1"); err == nil {
		t.Fatalf("expected invalid storage error")
	}
}
