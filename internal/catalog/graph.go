package catalog

import (
	"strings"

	"github.com/satriadi/perpustakaan/internal/entities"
)

// maxRelated caps the related-books result. The cap truncates the genre
// bucket in insertion order; it does not reorder to prefer same-author hits.
const maxRelated = 5

// Graph is the recommendation adjacency: normalized genre to the ids of the
// books carrying it, in catalog order at build time. It is rebuilt from
// scratch after every load and mutation, never patched incrementally;
// catalogs are small enough that a full rebuild stays cheap.
type Graph struct {
	genres map[string][]int
}

func (g *Graph) rebuild(books []entities.Book) {
	g.genres = make(map[string][]int)
	for _, b := range books {
		genre := normalizeGenre(b.Genre)
		if genre == "" {
			continue
		}
		g.genres[genre] = append(g.genres[genre], b.ID)
	}
}

func (g *Graph) bucket(genre string) []int {
	return g.genres[normalizeGenre(genre)]
}

func (g *Graph) clear() {
	g.genres = nil
}

func normalizeGenre(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RelatedBook is a recommendation hit. SameAuthor is informational only; it
// does not affect ordering or the truncation cap.
type RelatedBook struct {
	entities.Book
	SameAuthor bool `json:"same_author"`
}

// RelatedTo returns up to five books sharing the given book's genre, in
// genre-bucket order, excluding the book itself. It soft-fails to an empty
// slice on a non-positive id, an unknown id or an empty genre: "no
// recommendations yet" is an expected state, not an error.
func (s *Service) RelatedTo(bookID int) []RelatedBook {
	related := []RelatedBook{}
	if bookID <= 0 {
		return related
	}
	origin, ok := s.cache.find(bookID)
	if !ok || normalizeGenre(origin.Genre) == "" {
		return related
	}
	for _, id := range s.graph.bucket(origin.Genre) {
		if id == bookID {
			continue
		}
		book, ok := s.cache.find(id)
		if !ok {
			continue
		}
		related = append(related, RelatedBook{
			Book:       book,
			SameAuthor: sameAuthor(book.Author, origin.Author),
		})
		if len(related) == maxRelated {
			break
		}
	}
	return related
}

func sameAuthor(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
