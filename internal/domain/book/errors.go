package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists.")

	// ErrInvalidISBN ISBN长度不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN must be 10 or 13 characters long.")

	// ErrISBNRequired ISBN为空
	ErrISBNRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN is required.")

	// ErrTitleRequired 书名为空
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Title is required.")

	// ErrPublicationDateRequired 出版日期为空
	ErrPublicationDateRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Publication date is required.")

	// ErrPublicationDateInFuture 出版日期晚于当前时间
	ErrPublicationDateInFuture = apperrors.New(apperrors.ErrCodeInvalidParams, "Publication date cannot be in the future.")

	// ErrAuthorNameRequired 作者名为空
	ErrAuthorNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Author name is required.")

	// ErrUnknownAuthor 引用的作者不存在
	// 注意:这是参数错误(400),不是资源不存在(404)
	ErrUnknownAuthor = apperrors.New(apperrors.ErrCodeUnknownAuthor, "Author does not exist.")

	// ErrAuthorImmutable 图书作者不可修改
	ErrAuthorImmutable = apperrors.New(apperrors.ErrCodeAuthorImmutable, "The author of a book cannot be changed.")
)
