package steam

import (
	"context"
	"regexp"
	"strings"
)

var (
	bareProfileID = regexp.MustCompile(`^[0-9]{15,25}$`)
	bareSlug      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	bareDigits    = regexp.MustCompile(`^[0-9]+$`)

	profileIDCapture = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?steamcommunity\.com/profiles/([0-9]{15,25})/?$`)
	vanityCapture    = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?steamcommunity\.com/(?:id|user)/([A-Za-z0-9_-]+)/?$`)
	groupNameCapture = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?steamcommunity\.com/groups/([A-Za-z0-9_-]+)/?$`)
	groupIDCapture   = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?steamcommunity\.com/gid/([0-9]+)/?$`)
)

// Resolver turns one candidate string into a canonical numeric profile
// identity, calling the external service only for vanity names.
type Resolver struct {
	client SteamClientInterface
}

func NewResolver(client SteamClientInterface) *Resolver {
	return &Resolver{client: client}
}

// ResolveProfile returns the SteamID64 digits for a raw candidate.
// Already-numeric inputs never leave the process; everything else is a
// vanity lookup. Any failure is ErrUnresolved.
func (r *Resolver) ResolveProfile(ctx context.Context, raw string) (string, error) {
	s := Normalize(raw)

	if bareProfileID.MatchString(s) {
		return s, nil
	}
	if m := profileIDCapture.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if m := vanityCapture.FindStringSubmatch(s); m != nil {
		return r.client.ResolveVanity(ctx, m[1])
	}
	if bareSlug.MatchString(s) {
		return r.client.ResolveVanity(ctx, s)
	}

	// Import lines carry context around the link; fall back to inline
	// extraction and take the first profile-kind candidate.
	if c := Extract(s); !c.Empty() {
		for _, kind := range [][]string{c.ProfileIDs, c.Vanities, c.UserAliases} {
			if len(kind) > 0 {
				return r.ResolveProfile(ctx, kind[0])
			}
		}
	}
	return "", ErrUnresolved
}

// GroupRef is a parsed group reference. Groups are never sent to the
// external resolver: a numeric gid passes through and a name stays a
// literal lowercased key, because the service has no reliable name to
// gid lookup.
type GroupRef struct {
	Key  string
	URL  string
	GID  string
	Name string
}

// ParseGroup classifies a raw candidate as a group reference.
func ParseGroup(raw string) (GroupRef, bool) {
	s := Normalize(raw)
	if s == "" {
		return GroupRef{}, false
	}

	if bareDigits.MatchString(s) {
		return GroupRef{Key: GroupIDKey(s), URL: GroupIDPermalink(s), GID: s}, true
	}
	if m := groupIDCapture.FindStringSubmatch(s); m != nil {
		return GroupRef{Key: GroupIDKey(m[1]), URL: GroupIDPermalink(m[1]), GID: m[1]}, true
	}
	if m := groupNameCapture.FindStringSubmatch(s); m != nil {
		return GroupRef{Key: GroupNameKey(m[1]), URL: GroupNamePermalink(m[1]), Name: m[1]}, true
	}
	if bareSlug.MatchString(s) {
		return GroupRef{Key: GroupNameKey(s), URL: GroupNamePermalink(s), Name: s}, true
	}

	if c := Extract(s); len(c.GroupIDs) > 0 {
		return ParseGroup(c.GroupIDs[0])
	} else if len(c.GroupNames) > 0 {
		return ParseGroup(c.GroupNames[0])
	}
	return GroupRef{}, false
}

// Normalize trims whitespace and the <...> wrapping chat clients use to
// suppress link previews.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	for strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") && len(s) > 1 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
