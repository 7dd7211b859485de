package entities

import "strings"

// UnknownTitle is used when the catalog omits a volume title.
const UnknownTitle = "Unknown Title"

// Book is the single shape shared by catalog results and stored favourites.
// Optional fields are nil when absent; they are never encoded as "" here.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// FavoriteRow is the relational storage row for a favourite book.
type FavoriteRow struct {
	ID          string `gorm:"column:id;primaryKey;type:text"`
	Title       string `gorm:"column:title;type:text;not null"`
	Authors     string `gorm:"column:authors;type:text"`
	ImageURL    string `gorm:"column:imageUrl;type:text"`
	Description string `gorm:"column:description;type:text"`
}

func (FavoriteRow) TableName() string {
	return "favorites"
}

// StoredBook is the record kept in the preference store's id -> book map.
type StoredBook struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// AuthorsLine joins authors for display.
func (b Book) AuthorsLine() string {
	return strings.Join(b.Authors, ", ")
}

// Clone returns a copy that shares no memory with b.
func (b Book) Clone() Book {
	out := Book{
		ID:      b.ID,
		Title:   b.Title,
		Authors: append([]string{}, b.Authors...),
	}
	if b.ImageURL != nil {
		out.ImageURL = StringPtr(*b.ImageURL)
	}
	if b.Description != nil {
		out.Description = StringPtr(*b.Description)
	}
	return out
}

// ToRow encodes a book for the relational table. Authors are comma-joined and
// absent optional fields become "".
func ToRow(b Book) FavoriteRow {
	return FavoriteRow{
		ID:          b.ID,
		Title:       b.Title,
		Authors:     joinAuthors(b.Authors),
		ImageURL:    FromPtr(b.ImageURL),
		Description: FromPtr(b.Description),
	}
}

// FromRow is the inverse of ToRow. Author names containing commas do not
// survive the round trip.
func FromRow(r FavoriteRow) Book {
	return Book{
		ID:          r.ID,
		Title:       r.Title,
		Authors:     splitAuthors(r.Authors),
		ImageURL:    ToPtr(r.ImageURL),
		Description: ToPtr(r.Description),
	}
}

// ToStored encodes a book for the preference store, using the same author
// encoding as the relational row.
func ToStored(b Book) StoredBook {
	return StoredBook{
		ID:          b.ID,
		Title:       b.Title,
		Authors:     joinAuthors(b.Authors),
		ImageURL:    FromPtr(b.ImageURL),
		Description: FromPtr(b.Description),
	}
}

// FromStored is the inverse of ToStored.
func FromStored(s StoredBook) Book {
	return Book{
		ID:          s.ID,
		Title:       s.Title,
		Authors:     splitAuthors(s.Authors),
		ImageURL:    ToPtr(s.ImageURL),
		Description: ToPtr(s.Description),
	}
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// ToPtr maps "" to nil.
func ToPtr(s string) *string {
	if s == "" {
		return nil
	}
	return StringPtr(s)
}

// FromPtr maps nil to "".
func FromPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinAuthors(authors []string) string {
	return strings.Join(authors, ",")
}

func splitAuthors(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
