package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/catalog"
	"github.com/satriadi/perpustakaan/internal/entities"
)

// CatalogController exposes the catalog operations over HTTP. All routes
// require an authenticated session.
type CatalogController struct {
	catalog *catalog.Service
	auditor *audit.Service
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(cat *catalog.Service, auditor *audit.Service) *CatalogController {
	return &CatalogController{
		catalog: cat,
		auditor: auditor,
	}
}

// ListBooks returns the working copy in its current order.
func (cc *CatalogController) ListBooks(c *gin.Context) {
	books := cc.catalog.ListAll()
	c.JSON(http.StatusOK, gin.H{
		"books":           books,
		"count":           len(books),
		"sorted_by_title": cc.catalog.SortedByTitle(),
		"sorted_by_year":  cc.catalog.SortedByYear(),
	})
}

// AddBook inserts a new book into the catalog.
func (cc *CatalogController) AddBook(c *gin.Context) {
	var fields catalog.BookFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := cc.catalog.Add(fields)
	if err != nil {
		respondCatalogError(c, err, "add book")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogBook(book.UserID, entities.AuditActionBookAdd, book.Title)
	}
	respondCreated(c, book)
}

// UpdateBook overwrites the attributes of an existing book. An id that is
// not in the catalog is accepted and changes nothing.
func (cc *CatalogController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var fields catalog.BookFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := cc.catalog.Update(id, fields); err != nil {
		respondCatalogError(c, err, "update book")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogBook(cc.catalog.CurrentUserID(), entities.AuditActionBookUpdate, fields.Title)
	}
	respondSuccess(c, "book updated")
}

// DeleteBook removes a book from the catalog. An id that is not in the
// catalog is accepted and changes nothing.
func (cc *CatalogController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.catalog.Delete(id); err != nil {
		respondCatalogError(c, err, "delete book")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogBook(cc.catalog.CurrentUserID(), entities.AuditActionBookDelete, "")
	}
	respondSuccess(c, "book deleted")
}

type sortRequest struct {
	Key string `json:"key"`
}

// SortBooks orders the working copy by title or year.
func (cc *CatalogController) SortBooks(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := cc.catalog.SortBy(req.Key); err != nil {
		respondCatalogError(c, err, "sort books")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":           cc.catalog.ListAll(),
		"sorted_by_title": cc.catalog.SortedByTitle(),
		"sorted_by_year":  cc.catalog.SortedByYear(),
	})
}

// SearchBooks finds books by exact title or, failing that, by substring
// across title, author, genre and publisher. An empty query returns the
// whole catalog.
func (cc *CatalogController) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	books := cc.catalog.Search(query)
	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
		"query": query,
	})
}

// RelatedBooks suggests up to five books sharing the given book's genre.
func (cc *CatalogController) RelatedBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	related := cc.catalog.RelatedTo(id)
	c.JSON(http.StatusOK, gin.H{
		"related": related,
		"count":   len(related),
	})
}

// ReloadCatalog refreshes the working copy from the store.
func (cc *CatalogController) ReloadCatalog(c *gin.Context) {
	if err := cc.catalog.Reload(); err != nil {
		respondCatalogError(c, err, "reload catalog")
		return
	}

	books := cc.catalog.ListAll()
	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// Stats reports catalog summary figures. A "-" marks a statistic that has
// no value yet.
func (cc *CatalogController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_books":     cc.catalog.Len(),
		"top_genre":       cc.catalog.TopGenre(),
		"last_added":      cc.catalog.LastAdded(),
		"sorted_by_title": cc.catalog.SortedByTitle(),
		"sorted_by_year":  cc.catalog.SortedByYear(),
	})
}
