package book

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ISBN作为业务唯一标识(数据库层保证唯一性)
// 2. 作者通过book_authors关联表记录,创建时绑定且之后不可修改
// 3. AuthorName是查询投影,取第一个关联作者
type Book struct {
	ID              uint
	Title           string    // 书名
	PublicationDate time.Time // 出版日期
	ISBN            string    // ISBN号(10位或13位)
	AuthorID        uint      // 关联作者ID
	AuthorName      string    // 关联作者名
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 调用方需先通过ValidateFields校验参数
func NewBook(title string, publicationDate time.Time, isbn string, authorID uint, authorName string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		PublicationDate: CalendarDate(publicationDate),
		ISBN:            isbn,
		AuthorID:        authorID,
		AuthorName:      authorName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateInfo 更新书名、出版日期、ISBN
// 作者不在可修改范围内
func (b *Book) UpdateInfo(title string, publicationDate time.Time, isbn string) {
	b.Title = title
	b.PublicationDate = CalendarDate(publicationDate)
	b.ISBN = isbn
	b.UpdatedAt = time.Now()
}

// CalendarDate 取t在自身时区下的年月日，返回UTC零点
// 出版日期只保留日历日期，入库和读出都不受数据库连接时区影响
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWrittenBy 检查图书的关联作者是否为指定名称
func (b *Book) IsWrittenBy(authorName string) bool {
	return b.AuthorID != 0 && b.AuthorName == authorName
}

// ValidateFields 校验图书字段
// 业务规则:
// - 书名不能为空白
// - 出版日期必填且不能晚于now所在的日期
// - ISBN不能为空白,长度必须为10或13个字符
func ValidateFields(title string, publicationDate time.Time, isbn string, now time.Time) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if publicationDate.IsZero() {
		return ErrPublicationDateRequired
	}
	if CalendarDate(publicationDate).After(CalendarDate(now)) {
		return ErrPublicationDateInFuture
	}
	if strings.TrimSpace(isbn) == "" {
		return ErrISBNRequired
	}
	if !isValidISBN(isbn) {
		return ErrInvalidISBN
	}
	return nil
}

// isValidISBN 校验ISBN长度
// 按字符计数,不剥离分隔符,不校验校验位
func isValidISBN(isbn string) bool {
	n := utf8.RuneCountInString(isbn)
	return n == 10 || n == 13
}
