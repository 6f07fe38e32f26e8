package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/rental"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// rentalRepository 借阅仓储实现(MySQL)
// 教学要点:
// 1. "同一本书最多一条在借记录"靠事务+行锁保证,不靠唯一索引
//    (MySQL没有部分唯一索引,无法只对returned=false的行建约束)
// 2. 事务通过context传递
type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository 创建借阅仓储
func NewRentalRepository(db *gorm.DB) rental.Repository {
	return &rentalRepository{db: db}
}

// Create 创建借阅记录
// 必须在事务中调用(借出流程先做在借检查)
func (r *rentalRepository) Create(ctx context.Context, rec *rental.Rental) error {
	model := toRentalModel(rec)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	// 回填自增ID
	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	rec.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *rentalRepository) FindByID(ctx context.Context, id uint) (*rental.Rental, error) {
	var model RentalModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rental.ErrRentalNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toRentalEntity(&model), nil
}

// FindOutstandingByBookID 查找图书的在借记录
// 教学要点:事务内使用SELECT FOR UPDATE锁定在借记录,
// 两个并发借出请求会在这里串行化,后者看到前者插入的记录
func (r *rentalRepository) FindOutstandingByBookID(ctx context.Context, bookID uint) (*rental.Rental, error) {
	var model RentalModel

	db := r.getDB(ctx)
	if _, inTx := ctx.Value("tx").(*gorm.DB); inTx {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	err := db.Where("book_id = ? AND returned = ?", bookID, false).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rental.ErrRentalNotFound
		}
		return nil, apperrors.Wrap(err, "查询在借记录失败")
	}

	return toRentalEntity(&model), nil
}

// Update 更新借阅记录(主要用于归还)
func (r *rentalRepository) Update(ctx context.Context, rec *rental.Rental) error {
	result := r.getDB(ctx).Model(&RentalModel{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"returned":    rec.Returned,
			"returned_at": rec.ReturnedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}

	return nil
}

// ListByUserID 查询借阅人的全部借阅记录,按借出顺序
func (r *rentalRepository) ListByUserID(ctx context.Context, userID uint) ([]*rental.Rental, error) {
	var models []RentalModel

	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toRentalEntities(models), nil
}

// List 查询全部借阅记录,按借出顺序
func (r *rentalRepository) List(ctx context.Context) ([]*rental.Rental, error) {
	var models []RentalModel

	err := r.getDB(ctx).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toRentalEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toRentalModel 领域实体 → GORM模型
func toRentalModel(rec *rental.Rental) *RentalModel {
	return &RentalModel{
		ID:         rec.ID,
		UserID:     rec.UserID,
		BookID:     rec.BookID,
		Returned:   rec.Returned,
		RentedAt:   rec.RentedAt,
		ReturnedAt: rec.ReturnedAt,
	}
}

// toRentalEntity GORM模型 → 领域实体
func toRentalEntity(model *RentalModel) *rental.Rental {
	return &rental.Rental{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		Returned:   model.Returned,
		RentedAt:   model.RentedAt,
		ReturnedAt: model.ReturnedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toRentalEntities(models []RentalModel) []*rental.Rental {
	rentals := make([]*rental.Rental, len(models))
	for i := range models {
		rentals[i] = toRentalEntity(&models[i])
	}
	return rentals
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *rentalRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
