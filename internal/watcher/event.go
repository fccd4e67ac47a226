package watcher

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Op says what happened to a file.
type Op string

const (
	OpCreated Op = "created"
	OpChanged Op = "changed"
	OpRemoved Op = "removed"
)

// Event reports a settled change. Size and ModTime are zero for removals.
type Event struct {
	Op      Op
	Path    string
	Size    int64
	ModTime time.Time
}

const defaultSettle = 100 * time.Millisecond

// defaultSkip matches editor and OS droppings.
var defaultSkip = []string{".DS_Store", "*.tmp", "*.swp", "*~", "#*#"}

// Options configures a Watcher.
type Options struct {
	// Settle is how long a file must stay unchanged before it is reported.
	Settle time.Duration
	// Extensions limits events to these lower-case suffixes (".html"). Empty allows all.
	Extensions []string
	// Skip holds extra filepath.Match patterns for base names to ignore.
	Skip []string
	// KeepHidden reports dot files too.
	KeepHidden bool
}

func (o Options) settle() time.Duration {
	if o.Settle <= 0 {
		return defaultSettle
	}
	return o.Settle
}

// ignores reports whether path is filtered out.
func (o Options) ignores(path string) bool {
	base := filepath.Base(path)
	if !o.KeepHidden && strings.HasPrefix(base, ".") {
		return true
	}
	for _, pattern := range slices.Concat(defaultSkip, o.Skip) {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return len(o.Extensions) > 0 && !slices.Contains(o.Extensions, strings.ToLower(filepath.Ext(base)))
}
