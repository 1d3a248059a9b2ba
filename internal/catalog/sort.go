package catalog

import (
	"fmt"
	"strings"

	"github.com/satriadi/perpustakaan/internal/entities"
)

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortByTitle SortKey = "title"
	SortByYear  SortKey = "year"
)

// ParseSortKey matches a key name case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case string(SortByTitle):
		return SortByTitle, nil
	case string(SortByYear):
		return SortByYear, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// SortBy reorders the cache by the given key ("title" or "year") and records
// the resulting sortedness. A sort on an empty catalog is a silent no-op,
// before the key is even validated.
func (s *Service) SortBy(key string) error {
	if s.cache.Len() == 0 {
		return nil
	}
	k, err := ParseSortKey(key)
	if err != nil {
		return err
	}
	s.sortCache(k)
	return nil
}

func (s *Service) sortCache(key SortKey) {
	s.cache.books = mergeSort(s.cache.books, lessFor(key))
	s.cache.markSorted(key)
	s.notify(EventSortStatusChanged)
}

// titleFold normalizes a title for ordering and equality checks. Stored
// titles are already trimmed, so the trim only matters for caller input.
func titleFold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// compareTitles is the one title comparator shared by sorting and binary
// search. The two must order identically or binary search breaks.
func compareTitles(a, b string) int {
	return strings.Compare(titleFold(a), titleFold(b))
}

func lessFor(key SortKey) func(a, b *entities.Book) bool {
	if key == SortByYear {
		return func(a, b *entities.Book) bool { return a.Year < b.Year }
	}
	return func(a, b *entities.Book) bool { return compareTitles(a.Title, b.Title) < 0 }
}

// mergeSort is a pure function from an input sequence and comparator to a
// new sorted sequence; the input slice is left untouched. The merge is
// stable: on equal keys the left run wins, preserving input order.
func mergeSort(books []entities.Book, less func(a, b *entities.Book) bool) []entities.Book {
	if len(books) < 2 {
		out := make([]entities.Book, len(books))
		copy(out, books)
		return out
	}
	mid := len(books) / 2
	left := mergeSort(books[:mid], less)
	right := mergeSort(books[mid:], less)
	return merge(left, right, less)
}

func merge(left, right []entities.Book, less func(a, b *entities.Book) bool) []entities.Book {
	out := make([]entities.Book, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		// take from the left run unless the right element is strictly smaller
		if less(&right[j], &left[i]) {
			out = append(out, right[j])
			j++
		} else {
			out = append(out, left[i])
			i++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}
