package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  返回全部图书，按ID升序
// @Tags         图书
// @Produce      json
// @Success      200 {array} appbook.BookResponse
// @Failure      500 {string} string "Internal server error."
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	list, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} appbook.BookResponse
// @Failure      400 {string} string "Invalid id."
// @Failure      404 {string} string "Book not found."
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  作者必须已存在，ISBN长度为10或13且全局唯一
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} appbook.BookResponse
// @Header       201 {string} Location "/books/{id}"
// @Failure      400 {string} string "参数错误、ISBN重复或作者不存在"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:           req.Title,
		PublicationDate: req.PublishedAt(),
		ISBN:            req.ISBN,
		AuthorName:      req.AuthorName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/books/%d", resp.ID), resp)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  只修改书名、出版日期和ISBN，authorName必须与当前作者一致
// @Tags         图书
// @Accept       json
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      204
// @Failure      400 {string} string "参数错误、ISBN重复或修改作者"
// @Failure      404 {string} string "Book not found."
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:              id,
		Title:           req.Title,
		PublicationDate: req.PublishedAt(),
		ISBN:            req.ISBN,
		AuthorName:      req.AuthorName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {string} string "Book not found."
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
