package common

import "context"

// Transactor 事务执行器，由persistence/mysql.TxManager实现
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
