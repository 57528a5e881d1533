package dto

// AuthorRequest 创建/修改作者请求
type AuthorRequest struct {
	Name string `json:"name" binding:"max=100" example:"Frank Herbert"`
}
