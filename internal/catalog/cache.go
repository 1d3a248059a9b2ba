package catalog

import "github.com/satriadi/perpustakaan/internal/entities"

// Cache is the in-memory working copy of the current user's catalog. It is
// rebuilt wholesale on login and mirrored incrementally after each confirmed
// store write. Two flags record whether the current order satisfies a sort
// key; any mutation other than sorting itself clears both.
type Cache struct {
	books         []entities.Book
	sortedByTitle bool
	sortedByYear  bool
}

// Len returns the number of cached books.
func (c *Cache) Len() int {
	return len(c.books)
}

// All returns a copy of the cached books in their current order.
func (c *Cache) All() []entities.Book {
	out := make([]entities.Book, len(c.books))
	copy(out, c.books)
	return out
}

// SortedByTitle reports whether the cache currently holds title order.
func (c *Cache) SortedByTitle() bool {
	return c.sortedByTitle
}

// SortedByYear reports whether the cache currently holds year order.
func (c *Cache) SortedByYear() bool {
	return c.sortedByYear
}

func (c *Cache) find(id int) (entities.Book, bool) {
	for _, b := range c.books {
		if b.ID == id {
			return b, true
		}
	}
	return entities.Book{}, false
}

// replace swaps in a freshly loaded book sequence and invalidates sortedness.
func (c *Cache) replace(books []entities.Book) {
	c.books = books
	c.invalidate()
}

// add appends a newly persisted book to the tail.
func (c *Cache) add(book entities.Book) {
	c.books = append(c.books, book)
	c.invalidate()
}

// update replaces the matching entry in place, preserving its position.
// Reports whether a matching entry existed; an absent id is not an error.
func (c *Cache) update(book entities.Book) bool {
	for i := range c.books {
		if c.books[i].ID == book.ID {
			c.books[i] = book
			c.invalidate()
			return true
		}
	}
	return false
}

// remove drops the matching entry, if present.
func (c *Cache) remove(id int) bool {
	for i := range c.books {
		if c.books[i].ID == id {
			c.books = append(c.books[:i], c.books[i+1:]...)
			c.invalidate()
			return true
		}
	}
	return false
}

func (c *Cache) clear() {
	c.books = nil
	c.invalidate()
}

func (c *Cache) invalidate() {
	c.sortedByTitle = false
	c.sortedByYear = false
}

// markSorted records that the cache now satisfies order for exactly one key.
func (c *Cache) markSorted(key SortKey) {
	c.sortedByTitle = key == SortByTitle
	c.sortedByYear = key == SortByYear
}
