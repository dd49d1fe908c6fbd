package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	want := []string{"data", "recipes", "selections", "grid", "cache"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGridCmd_RejectsNonIntegerPK(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"grid", "not-a-number"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	if err == nil {
		t.Fatal("grid should reject a non-integer recipe pk")
	}
	if !strings.Contains(err.Error(), "recipe pk") {
		t.Errorf("error = %v", err)
	}
}

func TestDataCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("EASYDATA_API_KEY", "")

	root := newRootCmd()
	root.SetArgs([]string{"data", "--codes", "GDP"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Fatal("data should fail without an api key")
	}
}

func TestCacheClear(t *testing.T) {
	t.Setenv("EASYDATA_CACHE_DIR", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetArgs([]string{"cache", "clear"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out.String(), "Deleted 0") {
		t.Errorf("output = %q", out.String())
	}
}
