package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，database.driver选择mysql（生产）或sqlite（本地/测试）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. TranslateError开启后，唯一索引冲突统一转换为gorm.ErrDuplicatedKey
// 5. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择驱动
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Millisecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == "sqlite" {
		// SQLite只允许单写连接；:memory:库在每个连接上都是独立的
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if err := autoMigrate(db, cfg.Database.Driver); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// mysqlTableOptions 新建表使用二进制排序规则，作者名和ISBN按字节精确比较
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB, driver string) error {
	if driver == "mysql" {
		db = db.Set("gorm:table_options", mysqlTableOptions)
	}
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
		&BookAuthorModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,兜底应用层的重复检查
// 2. 作者不在books表上,通过book_authors关联
// 3. 硬删除(无DeletedAt),删除后ISBN可以复用
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"size:255;not null;comment:书名"`
	PublicationDate time.Time `gorm:"type:date;not null;comment:出版日期"`
	ISBN            string    `gorm:"uniqueIndex;size:13;not null;comment:ISBN号"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:作者名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookAuthorModel 图书-作者关联模型
// 复合主键(book_id, author_id),author_id单独建索引用于级联删除
type BookAuthorModel struct {
	BookID   uint `gorm:"primaryKey;autoIncrement:false;comment:图书ID"`
	AuthorID uint `gorm:"primaryKey;autoIncrement:false;index;comment:作者ID"`
}

// TableName 指定表名
func (BookAuthorModel) TableName() string {
	return "book_authors"
}
