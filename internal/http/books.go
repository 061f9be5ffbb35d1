package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
)

type createBookRequest struct {
	Title         string       `json:"title" binding:"required"`
	Author        string       `json:"author" binding:"required"`
	PublishedDate *domain.Date `json:"published_date" binding:"required"`
	Summary       *string      `json:"summary"`
	Genre         *string      `json:"genre"`
}

// updateBookRequest keeps key presence so absent fields stay untouched.
type updateBookRequest struct {
	Title         domain.Optional[string]      `json:"title"`
	Author        domain.Optional[string]      `json:"author"`
	PublishedDate domain.Optional[domain.Date] `json:"published_date"`
	Summary       domain.Optional[string]      `json:"summary"`
	Genre         domain.Optional[string]      `json:"genre"`
}

type listBooksQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

type bookResponse struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	PublishedDate domain.Date `json:"published_date"`
	Summary       *string     `json:"summary"`
	Genre         *string     `json:"genre"`
}

func (h *Handler) createBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, bindingError(err))
		return
	}

	book, err := h.books.CreateBook(c.Request.Context(), &domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: *req.PublishedDate,
		Summary:       req.Summary,
		Genre:         req.Genre,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logMutation(c, domain.EventCreated, book)
	c.JSON(http.StatusCreated, bookToResponse(*book))
}

func (h *Handler) listBooks(c *gin.Context) {
	var query listBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.writeError(c, bindingError(err))
		return
	}

	books, err := h.books.ListBooks(c.Request.Context(), repository.ListOptions{
		Offset: query.Skip,
		Limit:  query.Limit,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]bookResponse, len(books))
	for i := range books {
		resp[i] = bookToResponse(books[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	book, err := h.books.GetBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookToResponse(*book))
}

func (h *Handler) updateBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, bindingError(err))
		return
	}

	book, err := h.books.UpdateBook(c.Request.Context(), id, domain.BookUpdate{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		Summary:       req.Summary,
		Genre:         req.Genre,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logMutation(c, domain.EventUpdated, book)
	c.JSON(http.StatusOK, bookToResponse(*book))
}

func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	book, err := h.books.DeleteBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logMutation(c, domain.EventDeleted, book)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Book with ID %d has been deleted", id)})
}

func (h *Handler) bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		verr := &domain.ValidationError{}
		verr.Add("id", "must be a positive integer")
		h.writeError(c, verr)
		return 0, false
	}
	return id, true
}

func (h *Handler) logMutation(c *gin.Context, action domain.EventAction, book *domain.Book) {
	fields := logrus.Fields{
		"action":  action,
		"book_id": book.ID,
		"title":   book.Title,
	}
	if user := currentUser(c); user != nil {
		fields["username"] = user.Username
	}
	h.logger.WithFields(fields).Info("book mutated")
}

func bookToResponse(book domain.Book) bookResponse {
	return bookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		PublishedDate: book.PublishedDate,
		Summary:       book.Summary,
		Genre:         book.Genre,
	}
}
