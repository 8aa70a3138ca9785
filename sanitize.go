package mojinamer

import (
	"regexp"
	"strconv"
	"strings"
)

// maxStemLength bounds the filename stem, truncation happens at a word
// boundary where possible.
const maxStemLength = 64

const fallbackStem = "unnamed"

var (
	reLeadingArticle = regexp.MustCompile(`^(?:a|an|the)\s+`)
	reDisallowed     = regexp.MustCompile(`[^a-z0-9_\-\s]+`)
	reSeparators     = regexp.MustCompile(`[\s\-]+`)
	reUnderscoreRuns = regexp.MustCompile(`_+`)
)

// Sanitizer converts model phrases into filesystem-safe filenames. It carries
// the counter that disambiguates fallback names within a run, so one instance
// serves a whole batch. Sanitize never fails: any input, including empty or
// pure punctuation, yields a valid name.
type Sanitizer struct {
	fallbacks int
}

// Sanitize returns a name matching [a-z0-9_]{1,64} plus the lowercased ext.
// Already-sanitized stems pass through unchanged.
func (s *Sanitizer) Sanitize(phrase, ext string) string {
	return s.stem(phrase) + strings.ToLower(ext)
}

func (s *Sanitizer) stem(phrase string) string {
	t := strings.ToLower(strings.TrimSpace(phrase))
	// Model phrases often open with an article ("a red bicycle ..."). Strip
	// it before slugging; underscore-joined input is left alone so that
	// sanitization is idempotent.
	t = reLeadingArticle.ReplaceAllString(t, "")
	t = reDisallowed.ReplaceAllString(t, "")
	t = reSeparators.ReplaceAllString(t, "_")
	t = reUnderscoreRuns.ReplaceAllString(t, "_")
	t = strings.Trim(t, "_")
	t = truncateStem(t, maxStemLength)

	if t == "" {
		s.fallbacks++
		return fallbackStem + "_" + strconv.Itoa(s.fallbacks)
	}
	return t
}

// truncateStem cuts t to at most n bytes, backing up to the last underscore
// so words are not cut in half. Stems are pure ASCII by this point.
func truncateStem(t string, n int) string {
	if len(t) <= n {
		return t
	}
	cut := t[:n]
	if i := strings.LastIndexByte(cut, '_'); i > 0 {
		cut = cut[:i]
	}
	return strings.Trim(cut, "_")
}
