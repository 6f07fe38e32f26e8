package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
)

// 教学说明：分类领域服务单元测试
//
// 重点覆盖关联操作的幂等语义：
// 重复挂分类、重复摘分类都是无操作，直接返回成功

// newCategoryFixture 构造测试环境：1本预置图书
func newCategoryFixture(t *testing.T) (category.Service, uint) {
	t.Helper()

	store := memory.NewStore()
	bookRepo := memory.NewBookRepository(store)
	svc := category.NewService(memory.NewCategoryRepository(store), bookRepo, store)

	b := book.NewBook(1, "测试图书", "测试作者", "", 2020)
	require.NoError(t, bookRepo.Create(context.Background(), b))

	return svc, b.ID
}

// TestCreateCategory 测试分类创建
func TestCreateCategory(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		svc, _ := newCategoryFixture(t)

		c, err := svc.CreateCategory(context.Background(), "科幻")

		require.NoError(t, err)
		assert.NotZero(t, c.ID, "分类ID应该自增分配")
		assert.Equal(t, "科幻", c.Name)

		t.Logf("✓ 创建成功，分类ID: %d", c.ID)
	})

	t.Run("分类名重复", func(t *testing.T) {
		svc, _ := newCategoryFixture(t)

		_, err := svc.CreateCategory(context.Background(), "文学")
		require.NoError(t, err)

		_, err = svc.CreateCategory(context.Background(), "文学")

		assert.ErrorIs(t, err, category.ErrCategoryDuplicate)

		t.Logf("✓ 重名分类正确被拒绝: %v", err)
	})

	t.Run("分类名为空", func(t *testing.T) {
		svc, _ := newCategoryFixture(t)

		_, err := svc.CreateCategory(context.Background(), "")

		assert.ErrorIs(t, err, category.ErrEmptyName)

		t.Logf("✓ 空分类名正确被拒绝: %v", err)
	})

	t.Run("列表按创建顺序返回", func(t *testing.T) {
		svc, _ := newCategoryFixture(t)

		for _, name := range []string{"科幻", "文学", "历史"} {
			_, err := svc.CreateCategory(context.Background(), name)
			require.NoError(t, err)
		}

		categories, err := svc.ListCategories(context.Background())

		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "科幻", categories[0].Name)
		assert.Equal(t, "历史", categories[2].Name)

		t.Logf("✓ 列表按创建顺序返回 %d 个分类", len(categories))
	})
}

// TestAssignToBook 测试图书挂分类
func TestAssignToBook(t *testing.T) {
	t.Run("正常挂分类", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)
		c, err := svc.CreateCategory(context.Background(), "科幻")
		require.NoError(t, err)

		err = svc.AssignToBook(context.Background(), bookID, c.ID)

		require.NoError(t, err)

		categories, err := svc.ListBookCategories(context.Background(), bookID)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, c.ID, categories[0].ID)

		t.Logf("✓ 挂分类成功")
	})

	t.Run("重复挂分类是幂等操作", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)
		c, err := svc.CreateCategory(context.Background(), "文学")
		require.NoError(t, err)

		require.NoError(t, svc.AssignToBook(context.Background(), bookID, c.ID))
		err = svc.AssignToBook(context.Background(), bookID, c.ID)

		require.NoError(t, err, "重复挂分类不应该报错")

		categories, err := svc.ListBookCategories(context.Background(), bookID)
		require.NoError(t, err)
		assert.Len(t, categories, 1, "不应该产生重复关联")

		t.Logf("✓ 重复挂分类幂等返回，关联数仍为 %d", len(categories))
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _ := newCategoryFixture(t)
		c, err := svc.CreateCategory(context.Background(), "历史")
		require.NoError(t, err)

		err = svc.AssignToBook(context.Background(), 999, c.ID)

		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 不存在的图书正确被拒绝: %v", err)
	})

	t.Run("分类不存在", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)

		err := svc.AssignToBook(context.Background(), bookID, 999)

		assert.ErrorIs(t, err, category.ErrCategoryNotFound)

		t.Logf("✓ 不存在的分类正确被拒绝: %v", err)
	})
}

// TestRemoveFromBook 测试图书摘分类
func TestRemoveFromBook(t *testing.T) {
	t.Run("正常摘除", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)
		c, err := svc.CreateCategory(context.Background(), "科幻")
		require.NoError(t, err)
		require.NoError(t, svc.AssignToBook(context.Background(), bookID, c.ID))

		err = svc.RemoveFromBook(context.Background(), bookID, c.ID)

		require.NoError(t, err)

		categories, err := svc.ListBookCategories(context.Background(), bookID)
		require.NoError(t, err)
		assert.Empty(t, categories, "摘除后分类列表应该为空")

		t.Logf("✓ 摘除成功")
	})

	t.Run("摘除未关联的分类是幂等操作", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)
		c, err := svc.CreateCategory(context.Background(), "文学")
		require.NoError(t, err)

		err = svc.RemoveFromBook(context.Background(), bookID, c.ID)

		assert.NoError(t, err, "未关联时摘除不应该报错")

		t.Logf("✓ 摘除未关联分类幂等返回")
	})

	t.Run("摘除只影响指定的关联对", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)
		c1, err := svc.CreateCategory(context.Background(), "科幻")
		require.NoError(t, err)
		c2, err := svc.CreateCategory(context.Background(), "文学")
		require.NoError(t, err)
		require.NoError(t, svc.AssignToBook(context.Background(), bookID, c1.ID))
		require.NoError(t, svc.AssignToBook(context.Background(), bookID, c2.ID))

		require.NoError(t, svc.RemoveFromBook(context.Background(), bookID, c1.ID))

		categories, err := svc.ListBookCategories(context.Background(), bookID)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, c2.ID, categories[0].ID, "另一个关联应该保留")

		t.Logf("✓ 摘除只影响指定关联对")
	})
}

// TestListBookCategories 测试图书分类列表
func TestListBookCategories(t *testing.T) {
	t.Run("按关联顺序返回", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)
		c1, err := svc.CreateCategory(context.Background(), "科幻")
		require.NoError(t, err)
		c2, err := svc.CreateCategory(context.Background(), "文学")
		require.NoError(t, err)
		require.NoError(t, svc.AssignToBook(context.Background(), bookID, c2.ID))
		require.NoError(t, svc.AssignToBook(context.Background(), bookID, c1.ID))

		categories, err := svc.ListBookCategories(context.Background(), bookID)

		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, c2.ID, categories[0].ID, "先关联的排前面")

		t.Logf("✓ 分类列表按关联顺序返回")
	})

	t.Run("未挂分类返回空列表", func(t *testing.T) {
		svc, bookID := newCategoryFixture(t)

		categories, err := svc.ListBookCategories(context.Background(), bookID)

		require.NoError(t, err, "未挂分类不是错误")
		assert.Empty(t, categories)

		t.Logf("✓ 未挂分类返回空列表")
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _ := newCategoryFixture(t)

		_, err := svc.ListBookCategories(context.Background(), 999)

		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 不存在的图书正确返回: %v", err)
	})

	t.Run("图书删除后复用编号不继承旧分类", func(t *testing.T) {
		store := memory.NewStore()
		bookRepo := memory.NewBookRepository(store)
		svc := category.NewService(memory.NewCategoryRepository(store), bookRepo, store)

		old := book.NewBook(1, "旧书", "测试作者", "", 2020)
		require.NoError(t, bookRepo.Create(context.Background(), old))
		c, err := svc.CreateCategory(context.Background(), "科幻")
		require.NoError(t, err)
		require.NoError(t, svc.AssignToBook(context.Background(), old.ID, c.ID))

		require.NoError(t, bookRepo.Delete(context.Background(), old.ID))
		require.NoError(t, bookRepo.Create(context.Background(), book.NewBook(1, "新书", "另一位作者", "", 2021)))

		categories, err := svc.ListBookCategories(context.Background(), 1)

		require.NoError(t, err)
		assert.Empty(t, categories, "复用编号的新书不应该带上旧书的分类")

		t.Logf("✓ 删除图书时分类关联一并清理")
	})
}
