package models

import "github.com/google/uuid"

// AppEntry is one application published by a catalog source.
// ID is assigned locally at decode time and is never part of the wire format.
type AppEntry struct {
	ID                   uuid.UUID `json:"-"`
	Name                 string    `json:"name"`
	BundleIdentifier     string    `json:"bundleIdentifier"`
	DeveloperName        string    `json:"developerName"`
	Version              string    `json:"version"`
	VersionDescription   string    `json:"versionDescription"`
	DownloadURL          string    `json:"downloadURL"`
	LocalizedDescription string    `json:"localizedDescription"`
	IconURL              *string   `json:"iconURL,omitempty"`
	TintColor            *string   `json:"tintColor,omitempty"`
	Size                 *int64    `json:"size,omitempty"`
	Type                 *int      `json:"type,omitempty"`
}

// Catalog is the decoded document of a single source.
type Catalog struct {
	Apps []AppEntry `json:"apps"`
}

// Icon returns the icon URL or "" when the entry has none.
func (e AppEntry) Icon() string {
	if e.IconURL == nil {
		return ""
	}
	return *e.IconURL
}

// SameContent compares everything but the locally generated ID.
func (e AppEntry) SameContent(o AppEntry) bool {
	return e.Name == o.Name &&
		e.BundleIdentifier == o.BundleIdentifier &&
		e.DeveloperName == o.DeveloperName &&
		e.Version == o.Version &&
		e.VersionDescription == o.VersionDescription &&
		e.DownloadURL == o.DownloadURL &&
		e.LocalizedDescription == o.LocalizedDescription &&
		eqPtr(e.IconURL, o.IconURL) &&
		eqPtr(e.TintColor, o.TintColor) &&
		eqPtr(e.Size, o.Size) &&
		eqPtr(e.Type, o.Type)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
