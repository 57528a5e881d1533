package dto

import "time"

// BookRequest 创建/修改图书请求
// 必填和空白检查由领域服务完成，这里只限制长度，修改时authorName必须与当前作者一致
type BookRequest struct {
	Title           string `json:"title" binding:"max=255" example:"Dune"`
	PublicationDate *Date  `json:"publicationDate" swaggertype:"string" example:"1965-08-01"`
	ISBN            string `json:"isbn" binding:"max=64" example:"9780441013593"`
	AuthorName      string `json:"authorName" binding:"max=100" example:"Frank Herbert"`
}

// PublishedAt 出版日期，未传入时返回零值
func (r *BookRequest) PublishedAt() time.Time {
	if r.PublicationDate == nil {
		return time.Time{}
	}
	return r.PublicationDate.Time
}
