package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestConfig_LoadAndMerge(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), `
[parse]
allow_trailing = true

[format]
indent = 4

[output]
format = "yaml"

[run]
jobs = 8
include = ["*.easyprot", "*.proto"]
`)

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Output: outputCanonical, Jobs: 4}
	MergeConfig(&opts, cfg, map[string]bool{})

	if !opts.AllowTrailing {
		t.Error("AllowTrailing should be true from config")
	}
	if opts.Indent != 4 {
		t.Errorf("Indent: want 4, got %d", opts.Indent)
	}
	if opts.Output != outputYAML {
		t.Errorf("Output: want yaml, got %s", opts.Output)
	}
	if opts.Jobs != 8 {
		t.Errorf("Jobs: want 8, got %d", opts.Jobs)
	}
	if !slices.Equal(opts.Include, []string{"*.easyprot", "*.proto"}) {
		t.Errorf("Include: got %v", opts.Include)
	}
}

func TestConfig_CLIFlagsOverrideConfig(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), `
[parse]
allow_trailing = true

[format]
indent = 8

[output]
format = "json"
`)

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Output: outputCanonical, Indent: 2}
	MergeConfig(&opts, cfg, map[string]bool{"allow-trailing": true, "indent": true, "o": true})

	if opts.AllowTrailing {
		t.Error("explicit -allow-trailing=false should override config")
	}
	if opts.Indent != 2 {
		t.Errorf("explicit -indent should override config, got %d", opts.Indent)
	}
	if opts.Output != outputCanonical {
		t.Errorf("explicit -o should override config, got %s", opts.Output)
	}
}

func TestConfig_ExplicitFalseInFile(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), "[parse]\nallow_trailing = false\n")
	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{AllowTrailing: true}
	MergeConfig(&opts, cfg, map[string]bool{})
	if opts.AllowTrailing {
		t.Error("allow_trailing = false in the file should apply")
	}
}

func TestConfig_NilIsNoop(t *testing.T) {
	opts := Options{Jobs: 3}
	MergeConfig(&opts, nil, nil)
	if opts.Jobs != 3 {
		t.Errorf("nil config changed options: %+v", opts)
	}
}

func TestConfig_Malformed(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), "[format\nindent = ")
	if _, err := LoadConfig(configFile); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	got := findConfigFile()
	// The temp dir may be reached through a symlink.
	gotInfo, err := os.Stat(got)
	if err != nil {
		t.Fatalf("findConfigFile returned %q: %v", got, err)
	}
	wantInfo, _ := os.Stat(want)
	if !os.SameFile(gotInfo, wantInfo) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestFindConfigFile_StopsAtRepoRoot(t *testing.T) {
	parent := t.TempDir()
	writeConfig(t, parent, "")
	repo := filepath.Join(parent, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(repo)

	if got := findConfigFile(); got != "" {
		t.Errorf("search should stop at the repository root, got %s", got)
	}
}
