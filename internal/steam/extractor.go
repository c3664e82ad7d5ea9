package steam

import (
	"regexp"
	"strings"
)

// Candidates holds the per-kind, first-seen-ordered extraction output.
// Dedup here is by exact matched string; collapsing different spellings
// of the same identity happens after resolution.
type Candidates struct {
	ProfileIDs  []string
	Vanities    []string
	UserAliases []string
	GroupNames  []string
	GroupIDs    []string
}

func (c Candidates) Empty() bool {
	return len(c.ProfileIDs) == 0 && len(c.Vanities) == 0 && len(c.UserAliases) == 0 &&
		len(c.GroupNames) == 0 && len(c.GroupIDs) == 0
}

// RE2 has no lookahead, so the "followed by end-of-text or a delimiter"
// rule is a consumed non-capture class and the candidate itself sits in
// group 1. FindAllStringSubmatch keeps the matching stateless.
const (
	hostPrefix = `(?:https?://)?(?:www\.)?steamcommunity\.com`
	delimiter  = `(?:[\s)\]}>"'.,!?]|$)`
)

func boundedPattern(path string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(` + hostPrefix + path + `)` + delimiter)
}

var (
	profileIDPattern = boundedPattern(`/profiles/[0-9]{15,25}`)
	vanityPattern    = boundedPattern(`/id/[A-Za-z0-9_-]+`)
	userAliasPattern = boundedPattern(`/user/[A-Za-z0-9_-]+`)
	groupNamePattern = boundedPattern(`/groups/[A-Za-z0-9_-]+`)
	groupIDPattern   = boundedPattern(`/gid/[0-9]+`)

	fencedPattern = regexp.MustCompile("(?s)```.*?```")
	inlinePattern = regexp.MustCompile("`[^`\n]*`")

	bareIDPattern   = regexp.MustCompile(`\b[0-9]{15,25}\b`)
	hostLinePattern = regexp.MustCompile(`(?i)steamcommunity\.com`)
)

// Extract scans free text for Steam identity candidates. Fenced code
// blocks and inline code spans are stripped first.
func Extract(text string) Candidates {
	text = StripQuoted(text)

	return Candidates{
		ProfileIDs:  candidateMatches(profileIDPattern, text),
		Vanities:    candidateMatches(vanityPattern, text),
		UserAliases: candidateMatches(userAliasPattern, text),
		GroupNames:  candidateMatches(groupNamePattern, text),
		GroupIDs:    candidateMatches(groupIDPattern, text),
	}
}

// StripQuoted removes fenced multi-line blocks and inline code spans so
// pasted examples do not produce candidates.
func StripQuoted(text string) string {
	text = fencedPattern.ReplaceAllString(text, " ")
	return inlinePattern.ReplaceAllString(text, " ")
}

// ExtractBulk is the looser import-mode scan: every line containing the
// host substring and every bare 15-25 digit token counts. Recall over
// precision; the resolver sorts it out.
func ExtractBulk(text string) []string {
	var out []string
	seen := make(map[string]struct{})

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if hostLinePattern.MatchString(trimmed) {
			add(trimmed)
			continue
		}
		for _, token := range bareIDPattern.FindAllString(trimmed, -1) {
			add(token)
		}
	}

	return out
}

// candidateMatches runs one bounded pattern, reporting group 1 (the
// candidate without its trailing delimiter), deduped by exact string in
// first-seen order.
func candidateMatches(pattern *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		candidate := m[1]
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}
