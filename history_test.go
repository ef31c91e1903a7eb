package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAppendHistory(t *testing.T) {
	var h []string

	for _, line := range []string{"1+1", "  1+1  ", "", "   ", "x=2", "1+1", "x=2", "x=2"} {
		h = appendHistory(h, line)
	}

	want := []string{"1+1", "x=2", "1+1", "x=2"}
	if !reflect.DeepEqual(h, want) {
		t.Fatalf("history = %q, want %q", h, want)
	}
}

func TestLoadHistory(t *testing.T) {
	path := writeTemp(t, historyFileName, "a=1\n\n  a=1\nb=2  \n\nsqrt(2)\n")

	got, err := loadHistory(path)
	if err != nil {
		t.Fatalf("loadHistory error: %v", err)
	}

	want := []string{"a=1", "b=2", "sqrt(2)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loadHistory = %q, want %q", got, want)
	}
}

func TestLoadHistoryMissing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "none")} {
		got, err := loadHistory(path)
		if err != nil || got != nil {
			t.Fatalf("loadHistory(%q) = %q, %v", path, got, err)
		}
	}
}

func TestSaveHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", historyFileName)
	entries := []string{"scale=5", "4*a(1)"}

	if err := saveHistory(path, entries); err != nil {
		t.Fatalf("saveHistory error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "scale=5\n4*a(1)\n" {
		t.Fatalf("history file = %q", data)
	}

	got, err := loadHistory(path)
	if err != nil || !reflect.DeepEqual(got, entries) {
		t.Fatalf("reload = %q, %v", got, err)
	}

	if err := saveHistory("", entries); err != nil {
		t.Fatalf("saveHistory with no path: %v", err)
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("DNTK_HISTORY_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	if got := historyPath("/flag"); got != "/flag" {
		t.Fatalf("historyPath with flag = %q", got)
	}
	if got, want := historyPath(""), filepath.Join("/xdg", configDirName, historyFileName); got != want {
		t.Fatalf("historyPath from XDG = %q, want %q", got, want)
	}

	t.Setenv("DNTK_HISTORY_FILE", "/env")
	if got := historyPath(""); got != "/env" {
		t.Fatalf("historyPath from env = %q", got)
	}
}

func TestSaveSession(t *testing.T) {
	setupSession(t)

	g.historyFile = filepath.Join(t.TempDir(), historyFileName)
	g.history = []string{"x = 1", "x * 2"}

	saveSession()
	if _, err := os.Stat(g.historyFile); err == nil {
		t.Fatal("history written for a non-interactive session")
	}

	g.interactive = true
	saveSession()

	got, err := loadHistory(g.historyFile)
	if err != nil || !reflect.DeepEqual(got, g.history) {
		t.Fatalf("saved history = %q, %v", got, err)
	}
}
