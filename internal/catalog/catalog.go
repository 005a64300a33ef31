// Package catalog holds the static list of known junk-file locations and
// resolves its path patterns against a live volume. The engine never
// depends on the built-in list; any ordered set of patterns can be
// supplied through configuration.
package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies a resolved target.
type Kind int

const (
	// File targets are deleted as a whole.
	File Kind = iota
	// Directory targets have their contents, not the directory itself,
	// subject to removal.
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Entry is one static path pattern representing a known junk location.
// The pattern may be absolute or volume-relative, may carry %VAR% or
// $VAR environment placeholders, and may contain OS-style wildcards.
type Entry struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Target is an Entry resolved to an existing filesystem object.
// Ephemeral: valid only for the scan pass that produced it.
type Target struct {
	Path string
	Kind Kind
}

// Resolve expands the entry's placeholders, anchors volume-relative
// patterns at volumeRoot, and globs against the live filesystem.
// Patterns that match nothing, bad patterns, and stat failures all
// yield no targets; a missing junk location is the expected case.
func (e Entry) Resolve(volumeRoot string) []Target {
	pattern := ExpandEnv(e.Pattern)
	if pattern == "" {
		return nil
	}
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(volumeRoot, pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	targets := make([]Target, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		kind := File
		if info.IsDir() {
			kind = Directory
		}
		targets = append(targets, Target{Path: match, Kind: kind})
	}
	return targets
}

// ExpandEnv resolves both %VAR% (Windows style) and $VAR / ${VAR}
// placeholders against the process environment. An unset %VAR% expands
// to the empty string, which makes the pattern miss and the entry skip.
// A $ that does not name a set variable is kept literally: Windows path
// components like Installer\$PatchCache$ are data, not placeholders.
func ExpandEnv(s string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		b.WriteString(os.Getenv(s[start+1 : start+1+end]))
		s = s[start+end+2:]
	}
	return os.Expand(b.String(), func(name string) string {
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return "$" + name
	})
}
