package catalog

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// imageVariants lists the imageLinks keys from largest to smallest.
var imageVariants = []string{
	"extraLarge",
	"large",
	"medium",
	"small",
	"thumbnail",
	"smallThumbnail",
}

// FromRemotePayload maps one catalog volume onto a Book. It never fails:
// missing or malformed fields fall back to their defaults.
func FromRemotePayload(raw json.RawMessage) entities.Book {
	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		item = nil
	}
	return fromVolume(item)
}

func fromVolume(item map[string]any) entities.Book {
	book := entities.Book{
		ID:      stringField(item, "id"),
		Title:   entities.UnknownTitle,
		Authors: []string{},
	}

	info, _ := item["volumeInfo"].(map[string]any)
	if info == nil {
		return book
	}

	if title := strings.TrimSpace(stringField(info, "title")); title != "" {
		book.Title = title
	}

	if authors, ok := info["authors"].([]any); ok {
		for _, a := range authors {
			if name, ok := a.(string); ok && strings.TrimSpace(name) != "" {
				book.Authors = append(book.Authors, name)
			}
		}
	}

	if desc := stringField(info, "description"); strings.TrimSpace(desc) != "" {
		book.Description = entities.StringPtr(desc)
	}

	if links, ok := info["imageLinks"].(map[string]any); ok {
		book.ImageURL = entities.ToPtr(normalizeImageLink(pickImageLink(links)))
	}

	return book
}

// pickImageLink returns the highest resolution variant present, or the first
// available key when none of the known variants exist.
func pickImageLink(links map[string]any) string {
	for _, variant := range imageVariants {
		if link, ok := links[variant].(string); ok && link != "" {
			return link
		}
	}

	keys := make([]string, 0, len(links))
	for k := range links {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if link, ok := links[k].(string); ok && link != "" {
			return link
		}
	}
	return ""
}

// normalizeImageLink upgrades the scheme and strips characters that break URL
// parsing downstream.
func normalizeImageLink(link string) string {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "http://") {
		link = "https://" + strings.TrimPrefix(link, "http://")
	}
	link = strings.ReplaceAll(link, "{", "")
	link = strings.ReplaceAll(link, "}", "")
	return link
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
