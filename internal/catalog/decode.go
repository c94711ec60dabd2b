package catalog

import (
	"encoding/json"

	"github.com/MrSnakeDoc/altcat/internal/models"
	"github.com/google/uuid"
)

// document mirrors the wire format with pointers so absent and null
// required fields can be told apart from empty strings.
type document struct {
	Apps *[]json.RawMessage `json:"apps"`
}

type wireEntry struct {
	Name                 *string `json:"name"`
	BundleIdentifier     *string `json:"bundleIdentifier"`
	DeveloperName        *string `json:"developerName"`
	Version              *string `json:"version"`
	VersionDescription   *string `json:"versionDescription"`
	DownloadURL          *string `json:"downloadURL"`
	LocalizedDescription *string `json:"localizedDescription"`
	IconURL              *string `json:"iconURL"`
	TintColor            *string `json:"tintColor"`
	Size                 *int64  `json:"size"`
	Type                 *int    `json:"type"`
}

// Decode parses a catalog document. Decoding is all-or-nothing: the first
// element that fails the schema fails the whole document. Every entry gets a
// fresh ID, so decoding the same bytes twice never yields shared identities.
func Decode(data []byte) (models.Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Catalog{}, &DecodeError{Index: -1, Err: err}
	}
	if doc.Apps == nil {
		return models.Catalog{}, &DecodeError{Index: -1, Field: "apps", Err: ErrMissingField}
	}

	apps := make([]models.AppEntry, 0, len(*doc.Apps))
	for i, raw := range *doc.Apps {
		var w wireEntry
		if err := json.Unmarshal(raw, &w); err != nil {
			return models.Catalog{}, &DecodeError{Index: i, Err: err}
		}
		if field := w.missing(); field != "" {
			return models.Catalog{}, &DecodeError{Index: i, Field: field, Err: ErrMissingField}
		}
		apps = append(apps, w.entry())
	}

	return models.Catalog{Apps: apps}, nil
}

// Encode writes c back in the wire format; null optionals are omitted.
func Encode(c models.Catalog) ([]byte, error) {
	if c.Apps == nil {
		c.Apps = []models.AppEntry{}
	}
	return json.Marshal(c)
}

func (w wireEntry) missing() string {
	required := []struct {
		name string
		v    *string
	}{
		{"name", w.Name},
		{"bundleIdentifier", w.BundleIdentifier},
		{"developerName", w.DeveloperName},
		{"version", w.Version},
		{"versionDescription", w.VersionDescription},
		{"downloadURL", w.DownloadURL},
		{"localizedDescription", w.LocalizedDescription},
	}
	for _, r := range required {
		if r.v == nil {
			return r.name
		}
	}
	return ""
}

func (w wireEntry) entry() models.AppEntry {
	return models.AppEntry{
		ID:                   uuid.New(),
		Name:                 *w.Name,
		BundleIdentifier:     *w.BundleIdentifier,
		DeveloperName:        *w.DeveloperName,
		Version:              *w.Version,
		VersionDescription:   *w.VersionDescription,
		DownloadURL:          *w.DownloadURL,
		LocalizedDescription: *w.LocalizedDescription,
		IconURL:              w.IconURL,
		TintColor:            w.TintColor,
		Size:                 w.Size,
		Type:                 w.Type,
	}
}
