package safety

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrProtectedPath = errors.New("protected path")
	ErrOutsideRoots  = errors.New("outside allowed roots")
	ErrTraversal     = errors.New("path traversal detected")
	ErrSymlinkEscape = errors.New("symlink escape detected")
)

// Validator is the single source of truth for delete authorization.
// Catalog entries describe where junk lives; the validator guarantees a
// mis-expanded pattern can never reach a system-critical location.
type Validator struct {
	allowedRoots []string
	protected    []string
}

// NewValidator creates a validator. allowed may be empty, which lifts
// the root restriction; extraProtected extends the platform defaults.
func NewValidator(allowed, extraProtected []string) *Validator {
	return &Validator{
		allowedRoots: cleanAll(allowed),
		protected:    append(platformProtected(), cleanAll(extraProtected)...),
	}
}

// ValidateDeleteTarget authorizes one delete. Returns a typed error on
// any safety violation.
func (v *Validator) ValidateDeleteTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	if hasDotDot(path) {
		return ErrTraversal
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ErrInvalidPath
	}
	p := filepath.Clean(abs)

	if v.isProtected(p) {
		return ErrProtectedPath
	}
	if len(v.allowedRoots) > 0 && !withinAny(p, v.allowedRoots) {
		return ErrOutsideRoots
	}

	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		// A vanished path will fail the delete on its own.
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if v.isProtected(filepath.Clean(resolved)) {
		return ErrSymlinkEscape
	}
	if len(v.allowedRoots) > 0 && !withinAny(filepath.Clean(resolved), v.allowedRoots) {
		return ErrSymlinkEscape
	}
	return nil
}

func (v *Validator) isProtected(p string) bool {
	// Filesystem roots are never deletable.
	if p == string(os.PathSeparator) || p == filepath.VolumeName(p)+string(os.PathSeparator) {
		return true
	}
	for _, prot := range v.protected {
		if p == prot || strings.HasPrefix(p, prot+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func hasDotDot(raw string) bool {
	for _, part := range strings.Split(filepath.ToSlash(raw), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

func withinAny(p string, roots []string) bool {
	for _, r := range roots {
		if p == r || strings.HasPrefix(p, r+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		out = append(out, filepath.Clean(abs))
	}
	return out
}

// platformProtected lists subtrees that must never be deleted. Junk
// locations that live under an otherwise sensitive root (for example
// %WINDIR%\Temp) are deliberately not covered by a blanket block on
// that root; only the truly critical subtrees are listed.
func platformProtected() []string {
	if runtime.GOOS == "windows" {
		win := os.Getenv("WINDIR")
		if win == "" {
			win = `C:\Windows`
		}
		sd := os.Getenv("SYSTEMDRIVE")
		if sd == "" {
			sd = "C:"
		}
		return []string{
			filepath.Join(win, "System32"),
			filepath.Join(win, "SysWOW64"),
			filepath.Join(win, "WinSxS"),
			filepath.Join(win, "servicing"),
			filepath.Join(sd+`\`, "Boot"),
			filepath.Join(sd+`\`, "EFI"),
			filepath.Join(sd+`\`, "Program Files"),
			filepath.Join(sd+`\`, "Program Files (x86)"),
			filepath.Join(sd+`\`, "Recovery"),
		}
	}
	return []string{
		"/etc",
		"/bin",
		"/usr",
		"/boot",
		"/lib",
		"/lib64",
		"/sbin",
	}
}
