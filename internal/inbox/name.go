// Package inbox renders selected meetings into the documents the
// downstream extraction step consumes: stable human-readable filenames and
// a fixed markdown shape.
package inbox

import (
	"regexp"
	"strings"
	"time"
)

const (
	filePrefix = "granola-"
	fileExt    = ".md"
	maxSlugLen = 80
)

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify converts a title to a kebab-case filename slug: illegal filename
// characters stripped, whitespace collapsed to hyphens, lowercased, hyphen
// runs collapsed, trimmed, capped at 80 characters. An empty result
// becomes "untitled".
func Slugify(title string) string {
	slug := illegalChars.ReplaceAllString(title, "")
	slug = whitespace.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = strings.ToLower(slug)
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}
	// Cap counts characters, not bytes: a byte slice could cut mid-rune
	// and produce an invalid-UTF-8 filename.
	if runes := []rune(slug); len(runes) > maxSlugLen {
		slug = string(runes[:maxSlugLen])
	}
	return slug
}

// Namer generates deduplicated inbox filenames for one run. Dedup is
// scoped to the run on purpose: a meeting re-selected in a later run maps
// to the same unsuffixed path and overwrites its stale document.
type Namer struct {
	seen map[string]bool
}

// NewNamer returns a fresh per-run namer.
func NewNamer() *Namer {
	return &Namer{seen: make(map[string]bool)}
}

// Name derives the filename for a meeting: granola-{date}-{slug}.md, with
// "undated" standing in when the meeting date is unresolvable. If this run
// already produced the same name, the first 8 characters of the meeting id
// are appended before the extension.
func (n *Namer) Name(date time.Time, dated bool, title, meetingID string) string {
	dateSeg := "undated"
	if dated {
		dateSeg = date.Format("2006-01-02")
	}
	name := filePrefix + dateSeg + "-" + Slugify(title) + fileExt

	if n.seen[name] {
		suffix := meetingID
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		name = strings.TrimSuffix(name, fileExt) + "-" + suffix + fileExt
	}
	n.seen[name] = true
	return name
}
