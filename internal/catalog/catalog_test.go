package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

// TestExpandEnv verifies both %VAR% and $VAR placeholder styles resolve
// against the environment, and that a $ naming nothing stays literal.
func TestExpandEnv(t *testing.T) {
	t.Setenv("JUNKSWEEP_TEST_DIR", "/opt/testdata")
	t.Setenv("WINDIR", `C:\Windows`)

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"windows style", `%JUNKSWEEP_TEST_DIR%/cache`, "/opt/testdata/cache"},
		{"unix style", "$JUNKSWEEP_TEST_DIR/cache", "/opt/testdata/cache"},
		{"braced unix style", "${JUNKSWEEP_TEST_DIR}/cache", "/opt/testdata/cache"},
		{"no placeholder", "/plain/path", "/plain/path"},
		{"unset windows var", `%JUNKSWEEP_UNSET_VAR%/cache`, "/cache"},
		{"lone percent", "50%full", "50%full"},
		{"unset dollar var kept", `%JUNKSWEEP_TEST_DIR%/$JUNKSWEEP_TEST_SUB`, "/opt/testdata/$JUNKSWEEP_TEST_SUB"},
		{"literal dollar segment", `%WINDIR%\Installer\$PatchCache$`, `C:\Windows\Installer\$PatchCache$`},
		{"trailing dollar", `C:\dump$`, `C:\dump$`},
		{"dollar before separator", `C:\a$\b`, `C:\a$\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandEnv(tt.in)
			if got != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

// TestResolveVolumeRelative verifies bare patterns anchor at the volume
// root.
func TestResolveVolumeRelative(t *testing.T) {
	tmpDir := t.TempDir()
	junkDir := filepath.Join(tmpDir, "Windows.old")
	if err := os.MkdirAll(junkDir, 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	entry := Entry{Name: "PreviousInstallation", Pattern: "Windows.old"}
	targets := entry.Resolve(tmpDir)

	if len(targets) != 1 {
		t.Fatalf("Expected 1 target, got %d", len(targets))
	}
	if targets[0].Path != junkDir {
		t.Errorf("Expected path %s, got %s", junkDir, targets[0].Path)
	}
	if targets[0].Kind != Directory {
		t.Errorf("Expected Directory kind, got %v", targets[0].Kind)
	}
}

// TestResolveGlob verifies wildcard patterns expand to every match.
func TestResolveGlob(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"thumbcache_32.db", "thumbcache_96.db", "iconcache.db"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}

	entry := Entry{Name: "ThumbnailCache", Pattern: filepath.Join(tmpDir, "thumbcache_*.db")}
	targets := entry.Resolve(tmpDir)

	if len(targets) != 2 {
		t.Fatalf("Expected 2 targets, got %d: %v", len(targets), targets)
	}
	for _, target := range targets {
		if target.Kind != File {
			t.Errorf("Expected File kind for %s, got %v", target.Path, target.Kind)
		}
	}
}

// TestResolveMissingYieldsNothing verifies absent locations resolve to
// no targets, silently.
func TestResolveMissingYieldsNothing(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		pattern string
	}{
		{"missing path", filepath.Join(tmpDir, "nope")},
		{"missing glob", filepath.Join(tmpDir, "nope", "*.db")},
		{"empty after expansion", `%JUNKSWEEP_DEFINITELY_UNSET%`},
		{"bad glob", filepath.Join(tmpDir, "[")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := Entry{Name: tt.name, Pattern: tt.pattern}.Resolve(tmpDir)
			if len(targets) != 0 {
				t.Errorf("Expected no targets for %q, got %v", tt.pattern, targets)
			}
		})
	}
}

// TestResolveClassifiesKind verifies files and directories are told
// apart at resolve time.
func TestResolveClassifiesKind(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "cachedir"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "dump.dmp"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	dirTargets := Entry{Pattern: filepath.Join(tmpDir, "cachedir")}.Resolve(tmpDir)
	if len(dirTargets) != 1 || dirTargets[0].Kind != Directory {
		t.Errorf("Expected one Directory target, got %v", dirTargets)
	}

	fileTargets := Entry{Pattern: filepath.Join(tmpDir, "dump.dmp")}.Resolve(tmpDir)
	if len(fileTargets) != 1 || fileTargets[0].Kind != File {
		t.Errorf("Expected one File target, got %v", fileTargets)
	}
}

// TestDefaultCatalogIsOrdered verifies the built-in catalog is stable
// and starts with the update cache.
func TestDefaultCatalogIsOrdered(t *testing.T) {
	entries := Default()

	if len(entries) == 0 {
		t.Fatal("Default catalog is empty")
	}
	if entries[0].Name != "WindowsUpdateCache" {
		t.Errorf("Expected WindowsUpdateCache first, got %s", entries[0].Name)
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Name == "" || e.Pattern == "" {
			t.Errorf("Catalog entry missing name or pattern: %+v", e)
		}
		if seen[e.Name] {
			t.Errorf("Duplicate catalog entry name: %s", e.Name)
		}
		seen[e.Name] = true
	}

	// Two calls must agree, order included.
	again := Default()
	if len(again) != len(entries) {
		t.Fatalf("Default catalog length changed between calls: %d vs %d", len(entries), len(again))
	}
	for i := range entries {
		if entries[i] != again[i] {
			t.Errorf("Catalog order unstable at index %d: %+v vs %+v", i, entries[i], again[i])
		}
	}
}

// TestFromPatterns verifies config-supplied patterns keep their order
// and fall back to the pattern as name.
func TestFromPatterns(t *testing.T) {
	patterns := []string{"/var/tmp", "/tmp/*.bak"}
	entries := FromPatterns(patterns)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	for i, p := range patterns {
		if entries[i].Pattern != p {
			t.Errorf("Entry %d pattern = %s, expected %s", i, entries[i].Pattern, p)
		}
		if entries[i].Name != p {
			t.Errorf("Entry %d name = %s, expected pattern fallback %s", i, entries[i].Name, p)
		}
	}
}

// TestKindString covers the log label mapping.
func TestKindString(t *testing.T) {
	if File.String() != "file" {
		t.Errorf("File.String() = %s", File.String())
	}
	if Directory.String() != "directory" {
		t.Errorf("Directory.String() = %s", Directory.String())
	}
}
