package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/enrich"
	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/reports"
	"github.com/bibliosmart/bibliosmart/internal/tasks"
)

type BooksController struct {
	store      *library.Store
	service    *library.Service
	enricher   *enrich.Enricher
	taskClient *tasks.Client
}

func NewBooksController(store *library.Store, service *library.Service, enricher *enrich.Enricher, taskClient *tasks.Client) *BooksController {
	return &BooksController{
		store:      store,
		service:    service,
		enricher:   enricher,
		taskClient: taskClient,
	}
}

// List returns the catalogue, optionally filtered by the q query parameter.
func (ctrl *BooksController) List(c *gin.Context) {
	books := reports.SearchBooks(ctrl.store.Books(), c.Query("q"))
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

type createBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

// Create catalogues a new book.
func (ctrl *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	book, err := ctrl.service.AddBook(library.AddBookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Genre:       req.Genre,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, book)
}

// Delete removes a book from the catalogue. The operator confirmation
// happens client-side; once called, deletion is unconditional.
func (ctrl *BooksController) Delete(c *gin.Context) {
	if err := ctrl.service.DeleteBook(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "book deleted"})
}

type autofillRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
}

// Autofill suggests a genre and description for a book draft. The draft is
// never persisted here; the suggestion goes back to the client to merge
// into the form. Failures degrade to an empty suggestion.
func (ctrl *BooksController) Autofill(c *gin.Context) {
	var req autofillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
		return
	}

	suggestion := ctrl.enricher.SuggestDetails(c.Request.Context(), req.Title, req.Author)
	c.IndentedJSON(http.StatusOK, suggestion)
}

// Enrich queues background enrichment for one catalogued book.
func (ctrl *BooksController) Enrich(c *gin.Context) {
	if ctrl.taskClient == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is disabled"})
		return
	}

	book, err := ctrl.service.Book(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if _, err := ctrl.taskClient.Add(tasks.EnrichBookTask{BookID: book.ID}).Save(); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusAccepted, gin.H{"message": "enrichment queued", "bookId": book.ID})
}

// EnrichAll queues a sweep over every book missing genre and description.
func (ctrl *BooksController) EnrichAll(c *gin.Context) {
	if ctrl.taskClient == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is disabled"})
		return
	}

	missing := ctrl.service.BooksMissingDetails()
	if _, err := ctrl.taskClient.Add(tasks.EnrichBacklogTask{}).Save(); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusAccepted, gin.H{"message": "backlog sweep queued", "candidates": len(missing)})
}
