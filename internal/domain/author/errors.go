package author

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "Author not found.")

	// ErrAuthorNameDuplicate 作者名已存在
	ErrAuthorNameDuplicate = apperrors.New(apperrors.ErrCodeAuthorNameDuplicate, "An author with this name already exists.")

	// ErrNameRequired 作者名为空
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Name is required.")
)
