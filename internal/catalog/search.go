package catalog

import (
	"strings"

	"github.com/satriadi/perpustakaan/internal/entities"
)

// Search looks up books by query. An empty or whitespace-only query returns
// the whole catalog in its current order. Otherwise an exact
// case-insensitive title match is tried first via binary search; when one
// exists, every book sharing that normalized title is returned and no
// fallback runs. With no exact match the query falls back to a substring
// scan over title, author, genre and publisher.
//
// Binary search requires title order, so a cache that is not title-sorted is
// sorted first. That repair is internal, but it does reorder the catalog and
// fires the usual sort-status notification.
func (s *Service) Search(query string) []entities.Book {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.cache.All()
	}
	if s.cache.Len() == 0 {
		return []entities.Book{}
	}
	if !s.cache.SortedByTitle() {
		s.sortCache(SortByTitle)
	}

	books := s.cache.books
	if mid := binarySearchTitle(books, trimmed); mid >= 0 {
		// equal titles sort adjacently; expand to both sides of the hit
		lo, hi := mid, mid+1
		for lo > 0 && compareTitles(books[lo-1].Title, trimmed) == 0 {
			lo--
		}
		for hi < len(books) && compareTitles(books[hi].Title, trimmed) == 0 {
			hi++
		}
		out := make([]entities.Book, hi-lo)
		copy(out, books[lo:hi])
		return out
	}

	return substringScan(books, trimmed)
}

// binarySearchTitle returns the index of any book whose normalized title
// equals the query, or -1. The slice must be ordered by compareTitles.
func binarySearchTitle(books []entities.Book, title string) int {
	lo, hi := 0, len(books)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch cmp := compareTitles(books[mid].Title, title); {
		case cmp == 0:
			return mid
		case cmp < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// substringScan matches the lower-cased query as a substring of title,
// author, genre or publisher, returning hits in scan order. Ids are
// de-duplicated defensively even though the cache never holds duplicates.
func substringScan(books []entities.Book, query string) []entities.Book {
	q := strings.ToLower(query)
	results := make([]entities.Book, 0)
	seen := make(map[int]bool, len(books))
	for _, b := range books {
		if seen[b.ID] {
			continue
		}
		if containsFold(b.Title, q) ||
			containsFold(b.Author, q) ||
			containsFold(b.Genre, q) ||
			containsFold(b.Publisher, q) {
			seen[b.ID] = true
			results = append(results, b)
		}
	}
	return results
}

func containsFold(field, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(field), loweredQuery)
}
