package author

import (
	"github.com/xiebiao/bookshelf/internal/domain/author"
)

const tracerName = "application/author"

// AuthorResponse 作者视图，Books为关联图书的书名
type AuthorResponse struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Books []string `json:"books"`
}

func toAuthorResponse(a *author.Author) *AuthorResponse {
	books := a.BookTitles
	if books == nil {
		books = []string{}
	}
	return &AuthorResponse{
		ID:    a.ID,
		Name:  a.Name,
		Books: books,
	}
}
