package models

import "time"

// StoredProfile is a saved Steam profile, keyed by its numeric SteamID64.
type StoredProfile struct {
	ID      string    `json:"id"`
	Note    string    `json:"note,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// StoredGroup is a saved Steam group. Key is `gid:<digits>` for numeric
// groups and `groups:<lowercased name>` for named ones; URL keeps the
// casing the group was first seen with.
type StoredGroup struct {
	Key     string    `json:"key"`
	URL     string    `json:"url"`
	GID     string    `json:"gid,omitempty"`
	Name    string    `json:"name,omitempty"`
	Note    string    `json:"note,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

type UpsertResult int

const (
	UpsertAdded UpsertResult = iota
	UpsertExists
	UpsertUpdated
)

func (r UpsertResult) String() string {
	switch r {
	case UpsertAdded:
		return "added"
	case UpsertExists:
		return "exists"
	case UpsertUpdated:
		return "updated"
	}
	return "unknown"
}
