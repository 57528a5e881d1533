package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedAuthor(t *testing.T, repo author.Repository, name string) *author.Author {
	t.Helper()
	a := author.NewAuthor(name)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func seedBook(t *testing.T, repo book.Repository, a *author.Author, title, isbn string) *book.Book {
	t.Helper()
	b := book.NewBook(title, date(2001, 3, 4), isbn, a.ID, a.Name)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestBookRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)

	herbert := seedAuthor(t, authors, "Frank Herbert")
	dune := seedBook(t, books, herbert, "Dune", "9780441013593")
	messiah := seedBook(t, books, herbert, "Dune Messiah", "9780593098233")

	t.Run("按ID查询含作者名", func(t *testing.T) {
		got, err := books.FindByID(ctx, dune.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "Frank Herbert", got.AuthorName)
		assert.Equal(t, herbert.ID, got.AuthorID)
		assert.Equal(t, "2001-03-04", got.PublicationDate.Format("2006-01-02"))
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := books.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		_, err = books.FindByISBN(ctx, "0000000000")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("唯一索引冲突转换为业务错误", func(t *testing.T) {
		dup := book.NewBook("Another", date(2002, 1, 1), dune.ISBN, herbert.ID, herbert.Name)
		err := books.Create(ctx, dup)
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)

		messiah.ISBN = dune.ISBN
		err = books.Update(ctx, messiah)
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
		messiah.ISBN = "9780593098233"
	})

	t.Run("列表按ID升序", func(t *testing.T) {
		list, err := books.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, dune.ID, list[0].ID)
		assert.Equal(t, messiah.ID, list[1].ID)
		assert.Equal(t, "Frank Herbert", list[1].AuthorName)
	})

	t.Run("更新", func(t *testing.T) {
		dune.UpdateInfo("Dune (Deluxe)", date(2019, 10, 1), "0593099324")
		require.NoError(t, books.Update(ctx, dune))

		got, err := books.FindByISBN(ctx, "0593099324")
		require.NoError(t, err)
		assert.Equal(t, "Dune (Deluxe)", got.Title)
		assert.Equal(t, "2019-10-01", got.PublicationDate.Format("2006-01-02"))
	})

	t.Run("删除图书同时删除关联", func(t *testing.T) {
		require.NoError(t, books.Delete(ctx, messiah.ID))

		_, err := books.FindByID(ctx, messiah.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		var links int64
		require.NoError(t, db.Model(&BookAuthorModel{}).Where("book_id = ?", messiah.ID).Count(&links).Error)
		assert.Zero(t, links)

		assert.ErrorIs(t, books.Delete(ctx, messiah.ID), book.ErrBookNotFound)
	})
}

func TestAuthorRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)

	leGuin := seedAuthor(t, authors, "Ursula K. Le Guin")
	pratchett := seedAuthor(t, authors, "Terry Pratchett")
	seedBook(t, books, leGuin, "A Wizard of Earthsea", "9780547773742")
	seedBook(t, books, leGuin, "The Dispossessed", "9780061054884")
	colour := seedBook(t, books, pratchett, "The Colour of Magic", "9780062225672")

	t.Run("重名", func(t *testing.T) {
		err := authors.Create(ctx, author.NewAuthor("Terry Pratchett"))
		assert.ErrorIs(t, err, author.ErrAuthorNameDuplicate)

		leGuin.Name = "Terry Pratchett"
		assert.ErrorIs(t, authors.Update(ctx, leGuin), author.ErrAuthorNameDuplicate)
		leGuin.Name = "Ursula K. Le Guin"
	})

	t.Run("书名按图书ID升序", func(t *testing.T) {
		got, err := authors.FindByID(ctx, leGuin.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"A Wizard of Earthsea", "The Dispossessed"}, got.BookTitles)
	})

	t.Run("列表", func(t *testing.T) {
		list, err := authors.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Ursula K. Le Guin", list[0].Name)
		assert.Equal(t, []string{"The Colour of Magic"}, list[1].BookTitles)
	})

	t.Run("按名称查询", func(t *testing.T) {
		got, err := authors.FindByName(ctx, "Terry Pratchett")
		require.NoError(t, err)
		assert.Equal(t, pratchett.ID, got.ID)

		_, err = authors.FindByName(ctx, "terry pratchett")
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("删除作者级联删除图书", func(t *testing.T) {
		deleted, err := authors.Delete(ctx, leGuin.ID)
		require.NoError(t, err)
		assert.Len(t, deleted, 2)

		list, err := books.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, colour.ID, list[0].ID)

		var links int64
		require.NoError(t, db.Model(&BookAuthorModel{}).Count(&links).Error)
		assert.Equal(t, int64(1), links)

		_, err = authors.FindByID(ctx, leGuin.ID)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)

		// 硬删除,名称可以复用
		seedAuthor(t, authors, "Ursula K. Le Guin")
	})

	t.Run("新作者书名为空切片", func(t *testing.T) {
		a := seedAuthor(t, authors, "Nobody Yet")
		got, err := authors.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.BookTitles)
		assert.Empty(t, got.BookTitles)
	})
}

func TestTxManager(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	tx := NewTxManager(db)

	t.Run("出错回滚", func(t *testing.T) {
		boom := errors.New("boom")
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			if err := authors.Create(ctx, author.NewAuthor("Rolled Back")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = authors.FindByName(ctx, "Rolled Back")
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("成功提交", func(t *testing.T) {
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			return authors.Create(ctx, author.NewAuthor("Committed"))
		})
		require.NoError(t, err)

		_, err = authors.FindByName(ctx, "Committed")
		assert.NoError(t, err)
	})
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'idx_books_isbn'")))
	assert.True(t, isDuplicateError(errors.New("UNIQUE constraint failed: authors.name")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
}

func TestBookRepository_PublicationDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)
	herbert := seedAuthor(t, authors, "Frank Herbert")

	tests := []struct {
		name  string
		input time.Time
		isbn  string
	}{
		{"UTC深夜", time.Date(1965, 8, 1, 23, 30, 0, 0, time.UTC), "0000000001"},
		{"西五区深夜", time.Date(1965, 8, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)), "0000000002"},
		{"东八区凌晨", time.Date(1965, 8, 1, 0, 30, 0, 0, time.FixedZone("CST", 8*3600)), "0000000003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := book.NewBook("Dune", tt.input, tt.isbn, herbert.ID, herbert.Name)
			require.NoError(t, books.Create(ctx, b))
			assert.Equal(t, "1965-08-01", b.PublicationDate.Format("2006-01-02"))

			got, err := books.FindByID(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, "1965-08-01", got.PublicationDate.Format("2006-01-02"))
			assert.True(t, date(1965, 8, 1).Equal(got.PublicationDate), "读出后应为UTC零点: %s", got.PublicationDate)
		})
	}
}

func TestAuthorRepository_FindByNameIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// 模拟按大小写不敏感排序规则建出的旧表
	require.NoError(t, db.Migrator().DropTable(&AuthorModel{}))
	require.NoError(t, db.Exec(`CREATE TABLE authors (
		id integer PRIMARY KEY AUTOINCREMENT,
		name varchar(100) NOT NULL COLLATE NOCASE UNIQUE,
		created_at datetime,
		updated_at datetime
	)`).Error)

	authors := NewAuthorRepository(db)
	herbert := seedAuthor(t, authors, "Frank Herbert")

	t.Run("大小写不同视为不存在", func(t *testing.T) {
		_, err := authors.FindByName(ctx, "frank herbert")
		assert.True(t, errors.Is(err, author.ErrAuthorNotFound))
	})

	t.Run("精确匹配", func(t *testing.T) {
		got, err := authors.FindByName(ctx, "Frank Herbert")
		require.NoError(t, err)
		assert.Equal(t, herbert.ID, got.ID)

		b := book.NewBook("Dune", date(1965, 8, 1), "9780441013593", got.ID, got.Name)
		assert.True(t, b.IsWrittenBy("Frank Herbert"))
		assert.False(t, b.IsWrittenBy("frank herbert"))
	})
}

func TestAutoMigrate_MySQLTableOptions(t *testing.T) {
	assert.Contains(t, mysqlTableOptions, "COLLATE=utf8mb4_bin")
}
