// Package merge reconciles freshly generated content with content already on
// disk. Every strategy is a pure function: callers hand in both sides as
// strings and receive the combined result, never an error. When one side
// cannot be understood the other side wins, because a generator must not
// destroy what another process wrote.
package merge

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
)

// DefaultSeparator sits between prior and generated markdown sections.
const DefaultSeparator = "---"

// MarkdownOptions tunes the markdown strategy.
type MarkdownOptions struct {
	// Separator is inserted between the prior and new sections. Empty means
	// DefaultSeparator.
	Separator string
	// Header, when non-empty, is inserted after the separator and before the
	// new content.
	Header string
	// HeadingPattern, when set, rewrites a recognized heading in the new
	// content ahead of concatenation.
	HeadingPattern     *regexp.Regexp
	HeadingReplacement string
}

// Markdown combines prior on-disk markdown with newly generated markdown.
// An empty prior or a prior already contained in the new content yields the
// new content unchanged, so repeated runs never double a section.
func Markdown(prior, next string, opts MarkdownOptions) string {
	trimmedPrior := strings.TrimSpace(prior)
	if trimmedPrior == "" {
		return next
	}
	if strings.Contains(next, trimmedPrior) {
		return next
	}
	if opts.HeadingPattern != nil {
		next = opts.HeadingPattern.ReplaceAllString(next, opts.HeadingReplacement)
	}
	separator := opts.Separator
	if separator == "" {
		separator = DefaultSeparator
	}
	var b strings.Builder
	b.WriteString(trimmedPrior)
	b.WriteString("\n\n")
	b.WriteString(separator)
	b.WriteString("\n\n")
	if opts.Header != "" {
		b.WriteString(opts.Header)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimLeft(next, " \t\r\n"))
	return b.String()
}

// JSON deep-merges two JSON documents. Object fields recurse per key, array
// values at matching keys union with duplicates removed (prior order first),
// and conflicting scalars take the new side. An unparsable side forfeits:
// bad prior means the new document wins, a bad new document is returned
// verbatim since there is nothing to merge it into. The merged document is
// re-marshaled with the caller's indent (two spaces when empty).
func JSON(prior, next, indent string) string {
	var nextVal any
	if err := json.Unmarshal([]byte(next), &nextVal); err != nil {
		return next
	}
	var priorVal any
	if err := json.Unmarshal([]byte(prior), &priorVal); err != nil {
		return next
	}
	merged := mergeValues(priorVal, nextVal)
	if indent == "" {
		indent = "  "
	}
	out, err := json.MarshalIndent(merged, "", indent)
	if err != nil {
		return next
	}
	return string(out)
}

func mergeValues(prior, next any) any {
	if priorMap, ok := prior.(map[string]any); ok {
		if nextMap, ok := next.(map[string]any); ok {
			merged := make(map[string]any, len(priorMap)+len(nextMap))
			for key, value := range priorMap {
				merged[key] = value
			}
			for key, nextValue := range nextMap {
				if priorValue, exists := merged[key]; exists {
					merged[key] = mergeValues(priorValue, nextValue)
				} else {
					merged[key] = nextValue
				}
			}
			return merged
		}
	}
	if priorSlice, ok := prior.([]any); ok {
		if nextSlice, ok := next.([]any); ok {
			return unionSlices(priorSlice, nextSlice)
		}
	}
	return next
}

func unionSlices(prior, next []any) []any {
	merged := make([]any, 0, len(prior)+len(next))
	merged = append(merged, prior...)
	for _, candidate := range next {
		if !containsValue(merged, candidate) {
			merged = append(merged, candidate)
		}
	}
	return merged
}

func containsValue(values []any, candidate any) bool {
	for _, value := range values {
		if reflect.DeepEqual(value, candidate) {
			return true
		}
	}
	return false
}

// IgnoreFile appends entries from the new side that the prior side lacks.
// Lines compare after trimming; blank lines and # comments never count as
// entries. When nothing new remains the prior content comes back
// byte-identical. Additions keep new-side order and sit under the optional
// header.
func IgnoreFile(prior, next, header string) string {
	existing := ignoreEntries(prior)
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[entry] = struct{}{}
	}
	var additions []string
	for _, entry := range ignoreEntries(next) {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		additions = append(additions, entry)
	}
	if len(additions) == 0 {
		return prior
	}
	var b strings.Builder
	base := strings.TrimRight(prior, "\n")
	if base != "" {
		b.WriteString(base)
		b.WriteString("\n\n")
	}
	if header != "" {
		b.WriteString(header)
		b.WriteString("\n")
	}
	for _, entry := range additions {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	return b.String()
}

func ignoreEntries(content string) []string {
	var entries []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entries = append(entries, trimmed)
	}
	return entries
}
