package steam

import "strings"

const communityURL = "https://steamcommunity.com"

func ProfilePermalink(id string) string {
	return communityURL + "/profiles/" + id
}

func GroupIDPermalink(gid string) string {
	return communityURL + "/gid/" + gid
}

// GroupNamePermalink keeps the caller's casing; only the dedup key is
// case-folded.
func GroupNamePermalink(name string) string {
	return communityURL + "/groups/" + name
}

func GroupIDKey(gid string) string {
	return "gid:" + gid
}

func GroupNameKey(name string) string {
	return "groups:" + strings.ToLower(name)
}
