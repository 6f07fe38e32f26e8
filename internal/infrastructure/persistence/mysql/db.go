package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
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

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&CategoryModel{},
		&BookCategoryModel{},
		&RentalModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:借阅人姓名"`
	Phone     string         `gorm:"size:20;comment:联系电话"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ID是馆藏编号,由调用方指定,关闭自增
// 2. Seq是自增序列,唯一记录插入顺序(主键非自增后不能再用ID排序)
// 3. 书名/作者/出版年份都有索引,支撑检索和排序查询
type BookModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement:false;comment:馆藏编号(调用方指定)"`
	Seq           uint64    `gorm:"uniqueIndex;autoIncrement;comment:插入序列"`
	Title         string    `gorm:"index;size:200;comment:书名"`
	Author        string    `gorm:"index;size:100;comment:作者"`
	Description   string    `gorm:"type:text;comment:图书描述"`
	PublishedYear int       `gorm:"index;comment:出版年份"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// BookCategoryModel 图书-分类关联表
// 设计说明:
// 1. 复合主键(book_id, category_id)保证同一对关联只有一条记录
// 2. 幂等的Assign依赖这个约束:重复INSERT触发1062,仓储层吞掉
// 3. ID自增列记录关联建立顺序
type BookCategoryModel struct {
	ID         uint64    `gorm:"uniqueIndex;autoIncrement;comment:关联序列"`
	BookID     uint      `gorm:"primaryKey;comment:图书ID"`
	CategoryID uint      `gorm:"primaryKey;index;comment:分类ID"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BookCategoryModel) TableName() string {
	return "book_categories"
}

// RentalModel GORM借阅记录模型
// 设计说明:
// 1. Returned用bool存储,在借记录的业务唯一性在事务+行锁下保证
// 2. BookID有索引,支撑"查某本书的在借记录"
type RentalModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index;not null;comment:借阅人ID"`
	BookID     uint       `gorm:"index;not null;comment:图书ID"`
	Returned   bool       `gorm:"index;default:false;comment:是否已归还"`
	RentedAt   time.Time  `gorm:"comment:借出时间"`
	ReturnedAt *time.Time `gorm:"comment:归还时间"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (RentalModel) TableName() string {
	return "rentals"
}
