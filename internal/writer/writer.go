// Package writer turns plugin declarations into files and registrations.
// Each pass walks the enabled plugins, resolves every declaration to a path
// through the layout router, and reports one Result per artifact instead of
// failing the batch: a broken template or an unreachable directory costs that
// artifact, never the run.
package writer

import (
	"path/filepath"
	"strings"
)

// Kind labels what a Result describes.
type Kind string

const (
	KindCommand  Kind = "command"
	KindSkill    Kind = "skill"
	KindDataFile Kind = "data-file"
	KindRule     Kind = "rule"
	KindService  Kind = "service"
	KindDocument Kind = "document"
)

// Result records one artifact's outcome. A nil Err means the artifact was
// written or registered.
type Result struct {
	Kind   Kind
	Plugin string
	Name   string
	Path   string
	Err    error
}

// OK reports whether the artifact succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Tally counts successes and failures across a pass.
func Tally(results []Result) (written, failed int) {
	for _, r := range results {
		if r.OK() {
			written++
		} else {
			failed++
		}
	}
	return written, failed
}

// Failed filters a pass down to its failures.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// rel shortens a path for console output; the absolute path stays in the
// Result record.
func rel(root, path string) string {
	if root == "" {
		return path
	}
	r, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return path
	}
	return r
}
