package entity

import "time"

// Topic is a named subject users subscribe to and articles are posted under.
type Topic struct {
	ID          string
	Name        string
	Description string
}

// Article is a post written by a user under a topic.
type Article struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	AuthorID  string
	TopicID   string
}

// Comment is a reply to an article.
type Comment struct {
	ID        string
	Content   string
	CreatedAt time.Time
	AuthorID  string
	ArticleID string
}

// SortKey selects the ordering of article listings.
type SortKey string

const (
	SortDateAsc  SortKey = "date_asc"
	SortDateDesc SortKey = "date_desc"
)

// ErrUnsupportedSort is returned for any sort key other than date_asc and date_desc.
var ErrUnsupportedSort = &Error{Kind: ErrValidationFailed, Msg: "unsupported sort key"}

// ParseSortKey maps a query value to a SortKey. An empty value selects date_asc.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case "", SortDateAsc:
		return SortDateAsc, nil
	case SortDateDesc:
		return SortDateDesc, nil
	default:
		return "", ErrUnsupportedSort
	}
}

// Descending reports whether the key orders newest first.
func (k SortKey) Descending() bool { return k == SortDateDesc }
