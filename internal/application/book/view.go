package book

import (
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

const tracerName = "application/book"

// DateLayout 出版日期的输出格式
const DateLayout = "2006-01-02"

// BookResponse 图书视图
type BookResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	PublicationDate string `json:"publicationDate" example:"1965-08-01"`
	ISBN            string `json:"isbn"`
	AuthorName      string `json:"authorName"`
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationDate: b.PublicationDate.Format(DateLayout),
		ISBN:            b.ISBN,
		AuthorName:      b.AuthorName,
	}
}
