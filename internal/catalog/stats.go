package catalog

import "strings"

// StatNone is the sentinel returned when a statistic has no data to draw
// from: an empty catalog, or all-empty genres.
const StatNone = "-"

// TopGenre returns the genre with the strictly highest book count. Genres
// are compared trimmed but case-sensitively. On ties, whichever genre's
// count first reached the leading value keeps the title.
func (s *Service) TopGenre() string {
	counts := make(map[string]int)
	top := StatNone
	max := 0
	for _, b := range s.cache.books {
		genre := strings.TrimSpace(b.Genre)
		if genre == "" {
			continue
		}
		counts[genre]++
		if counts[genre] > max {
			max = counts[genre]
			top = genre
		}
	}
	return top
}

// LastAdded returns the title of the book with the highest id. Ids only ever
// grow, so the highest id is the most recently added record.
func (s *Service) LastAdded() string {
	title := ""
	maxID := 0
	for _, b := range s.cache.books {
		if b.ID > maxID {
			maxID = b.ID
			title = b.Title
		}
	}
	if title == "" {
		return StatNone
	}
	return title
}
