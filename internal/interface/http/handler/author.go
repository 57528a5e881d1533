package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	listAuthorsUseCase  *appauthor.ListAuthorsUseCase
	getAuthorUseCase    *appauthor.GetAuthorUseCase
	createAuthorUseCase *appauthor.CreateAuthorUseCase
	updateAuthorUseCase *appauthor.UpdateAuthorUseCase
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	listAuthorsUseCase *appauthor.ListAuthorsUseCase,
	getAuthorUseCase *appauthor.GetAuthorUseCase,
	createAuthorUseCase *appauthor.CreateAuthorUseCase,
	updateAuthorUseCase *appauthor.UpdateAuthorUseCase,
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		listAuthorsUseCase:  listAuthorsUseCase,
		getAuthorUseCase:    getAuthorUseCase,
		createAuthorUseCase: createAuthorUseCase,
		updateAuthorUseCase: updateAuthorUseCase,
		deleteAuthorUseCase: deleteAuthorUseCase,
	}
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Description  返回全部作者及其图书书名
// @Tags         作者
// @Produce      json
// @Success      200 {array} appauthor.AuthorResponse
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	list, err := h.listAuthorsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} appauthor.AuthorResponse
// @Failure      400 {string} string "Invalid id."
// @Failure      404 {string} string "Author not found."
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.getAuthorUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      201 {object} appauthor.AuthorResponse
// @Header       201 {string} Location "/authors/{id}"
// @Failure      400 {string} string "参数错误或作者名重复"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.createAuthorUseCase.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/authors/%d", resp.ID), resp)
}

// UpdateAuthor 修改作者名
// @Summary      修改作者名
// @Tags         作者
// @Accept       json
// @Param        id path int true "作者ID"
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      204
// @Failure      400 {string} string "参数错误或作者名重复"
// @Failure      404 {string} string "Author not found."
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.updateAuthorUseCase.Execute(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  同时删除该作者的全部图书
// @Tags         作者
// @Param        id path int true "作者ID"
// @Success      204
// @Failure      404 {string} string "Author not found."
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteAuthorUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
