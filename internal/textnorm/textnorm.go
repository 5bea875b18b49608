// Package textnorm normalizes review text for comparisons that must ignore
// letter case.
package textnorm

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// cases.Caser keeps transform state, so each goroutine takes its own.
var folders = sync.Pool{
	New: func() any { return cases.Fold() },
}

// Fold returns the Unicode case folding of s.
func Fold(s string) string {
	c := folders.Get().(cases.Caser)
	defer folders.Put(c)
	return c.String(s)
}

// Key returns the duplicate-detection key for s: folded and trimmed of
// surrounding whitespace.
func Key(s string) string {
	return strings.TrimSpace(Fold(s))
}
