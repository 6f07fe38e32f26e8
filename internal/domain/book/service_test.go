package book_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
)

// 教学说明：领域服务单元测试
//
// 测试策略：
// 1. 使用memory仓储实现，不依赖外部数据库（测试快、可并行）
// 2. memory和mysql实现同一套Repository契约，领域逻辑只测一次
// 3. 外部测试包（book_test），只通过导出接口测试

// newBookService 构造测试用的图书服务
func newBookService() book.Service {
	store := memory.NewStore()
	return book.NewService(memory.NewBookRepository(store), store)
}

// seedBooks 预置一批测试图书
func seedBooks(t *testing.T, svc book.Service) {
	t.Helper()

	books := []struct {
		id     uint
		title  string
		author string
		year   int
	}{
		{1, "围城", "钱锺书", 1947},
		{2, "活着", "余华", 1993},
		{3, "许三观卖血记", "余华", 1995},
		{4, "边城", "沈从文", 1934},
	}
	for _, b := range books {
		_, err := svc.CreateBook(context.Background(), b.id, b.title, b.author, "", b.year)
		require.NoError(t, err, "预置图书失败: %s", b.title)
	}
}

// TestCreateBook 测试图书登记
func TestCreateBook(t *testing.T) {
	t.Run("正常登记", func(t *testing.T) {
		svc := newBookService()

		b, err := svc.CreateBook(context.Background(), 42, "围城", "钱锺书", "讽刺小说", 1947)

		require.NoError(t, err)
		assert.Equal(t, uint(42), b.ID, "ID应该是调用方指定的值")
		assert.Equal(t, "围城", b.Title)
		assert.False(t, b.CreatedAt.IsZero(), "应该记录创建时间")

		t.Logf("✓ 登记成功，馆藏编号: %d", b.ID)
	})

	t.Run("ID重复返回冲突错误", func(t *testing.T) {
		svc := newBookService()

		_, err := svc.CreateBook(context.Background(), 1, "图书A", "作者A", "", 2020)
		require.NoError(t, err)

		_, err = svc.CreateBook(context.Background(), 1, "图书B", "作者B", "", 2021)

		assert.ErrorIs(t, err, book.ErrDuplicateID)

		t.Logf("✓ 重复ID正确被拒绝: %v", err)
	})

	t.Run("出版年份不能晚于当前年份", func(t *testing.T) {
		svc := newBookService()

		_, err := svc.CreateBook(context.Background(), 1, "未来之书", "预言家", "", 2999)

		assert.ErrorIs(t, err, book.ErrYearInFuture)

		t.Logf("✓ 未来年份正确被拒绝: %v", err)
	})

	t.Run("除年份外的字段允许为空", func(t *testing.T) {
		svc := newBookService()

		b, err := svc.CreateBook(context.Background(), 1, "", "", "", 2020)

		require.NoError(t, err, "空标题空作者是合法的")
		assert.Empty(t, b.Title)

		t.Logf("✓ 空字段登记成功")
	})
}

// TestGetBook 测试图书查询
func TestGetBook(t *testing.T) {
	svc := newBookService()
	seedBooks(t, svc)

	t.Run("查询存在的图书", func(t *testing.T) {
		b, err := svc.GetBook(context.Background(), 2)

		require.NoError(t, err)
		assert.Equal(t, "活着", b.Title)

		t.Logf("✓ 查询成功: %s", b.Title)
	})

	t.Run("查询不存在的图书", func(t *testing.T) {
		_, err := svc.GetBook(context.Background(), 999)

		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 不存在的图书正确返回: %v", err)
	})
}

// TestListBooks 测试图书列表
func TestListBooks(t *testing.T) {
	svc := newBookService()
	seedBooks(t, svc)

	books, err := svc.ListBooks(context.Background())

	require.NoError(t, err)
	require.Len(t, books, 4)

	// 列表按登记顺序返回
	assert.Equal(t, uint(1), books[0].ID)
	assert.Equal(t, uint(4), books[3].ID)

	t.Logf("✓ 列表按登记顺序返回 %d 本", len(books))
}

// TestSearchBooks 测试精确匹配检索
func TestSearchBooks(t *testing.T) {
	svc := newBookService()
	seedBooks(t, svc)

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	t.Run("单条件检索", func(t *testing.T) {
		books, err := svc.SearchBooks(context.Background(), book.Filter{
			Author: strPtr("余华"),
		})

		require.NoError(t, err)
		assert.Len(t, books, 2, "余华的书应该有2本")

		t.Logf("✓ 按作者检索命中 %d 本", len(books))
	})

	t.Run("多条件AND检索", func(t *testing.T) {
		books, err := svc.SearchBooks(context.Background(), book.Filter{
			Author:        strPtr("余华"),
			PublishedYear: intPtr(1995),
		})

		require.NoError(t, err)
		require.Len(t, books, 1, "作者+年份应该只命中1本")
		assert.Equal(t, "许三观卖血记", books[0].Title)

		t.Logf("✓ 多条件AND检索命中: %s", books[0].Title)
	})

	t.Run("精确匹配而非模糊匹配", func(t *testing.T) {
		books, err := svc.SearchBooks(context.Background(), book.Filter{
			Title: strPtr("围"),
		})

		require.NoError(t, err)
		assert.Empty(t, books, "部分标题不应该命中")

		t.Logf("✓ 标题是精确匹配语义")
	})

	t.Run("无条件等价于全量列表", func(t *testing.T) {
		books, err := svc.SearchBooks(context.Background(), book.Filter{})

		require.NoError(t, err)
		assert.Len(t, books, 4)

		t.Logf("✓ 无条件返回全部 %d 本", len(books))
	})

	t.Run("无匹配返回空列表", func(t *testing.T) {
		books, err := svc.SearchBooks(context.Background(), book.Filter{
			Author: strPtr("不存在的作者"),
		})

		require.NoError(t, err, "无匹配不是错误")
		assert.Empty(t, books)

		t.Logf("✓ 无匹配返回空列表")
	})
}

// TestSortBooks 测试排序查询
func TestSortBooks(t *testing.T) {
	svc := newBookService()
	seedBooks(t, svc)

	t.Run("按出版年份升序", func(t *testing.T) {
		books, err := svc.SortBooks(context.Background(), book.SortFieldPublishedYear, book.SortOrderAsc)

		require.NoError(t, err)
		require.Len(t, books, 4)
		assert.Equal(t, "边城", books[0].Title, "1934年的书应该排最前")
		assert.Equal(t, "许三观卖血记", books[3].Title, "1995年的书应该排最后")

		t.Logf("✓ 按年份升序: %s(%d) ... %s(%d)",
			books[0].Title, books[0].PublishedYear,
			books[3].Title, books[3].PublishedYear)
	})

	t.Run("按作者降序", func(t *testing.T) {
		books, err := svc.SortBooks(context.Background(), book.SortFieldAuthor, book.SortOrderDesc)

		require.NoError(t, err)
		require.Len(t, books, 4)
		for i := 1; i < len(books); i++ {
			assert.GreaterOrEqual(t, books[i-1].Author, books[i].Author, "作者应该是降序")
		}

		t.Logf("✓ 按作者降序返回 %d 本", len(books))
	})

	t.Run("排序键相等时保持登记顺序", func(t *testing.T) {
		books, err := svc.SortBooks(context.Background(), book.SortFieldAuthor, book.SortOrderAsc)

		require.NoError(t, err)

		// 余华有两本,稳定排序应该保持登记顺序
		var yuhuaIDs []uint
		for _, b := range books {
			if b.Author == "余华" {
				yuhuaIDs = append(yuhuaIDs, b.ID)
			}
		}
		require.Len(t, yuhuaIDs, 2)
		assert.Equal(t, []uint{2, 3}, yuhuaIDs, "同作者应该保持登记顺序")

		t.Logf("✓ 稳定排序，相等元素保持登记顺序")
	})

	t.Run("白名单外的排序字段被拒绝", func(t *testing.T) {
		_, err := svc.SortBooks(context.Background(), "price", book.SortOrderAsc)

		assert.ErrorIs(t, err, book.ErrInvalidSortField)

		t.Logf("✓ 非法排序字段正确被拒绝: %v", err)
	})

	t.Run("非法排序方向被拒绝", func(t *testing.T) {
		_, err := svc.SortBooks(context.Background(), book.SortFieldTitle, "up")

		assert.ErrorIs(t, err, book.ErrInvalidSortOrder)

		t.Logf("✓ 非法排序方向正确被拒绝: %v", err)
	})

	t.Run("空排序方向被拒绝而非回退默认值", func(t *testing.T) {
		_, err := svc.SortBooks(context.Background(), book.SortFieldTitle, "")

		assert.ErrorIs(t, err, book.ErrInvalidSortOrder)

		t.Logf("✓ 空排序方向正确被拒绝: %v", err)
	})
}

// TestUpdateBook 测试全量更新
func TestUpdateBook(t *testing.T) {
	t.Run("全量替换所有字段", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "旧标题", "旧作者", "旧描述", 2020)
		require.NoError(t, err)

		b, err := svc.UpdateBook(context.Background(), 1, "新标题", "新作者", "", 2021)

		require.NoError(t, err)
		assert.Equal(t, "新标题", b.Title)
		assert.Equal(t, "", b.Description, "PUT语义下空值也会覆盖")
		assert.Equal(t, 2021, b.PublishedYear)

		t.Logf("✓ 全量替换成功")
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		svc := newBookService()

		_, err := svc.UpdateBook(context.Background(), 999, "标题", "作者", "", 2020)

		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 不存在的图书正确返回: %v", err)
	})

	t.Run("校验失败时原记录保持不变", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "原标题", "原作者", "", 2020)
		require.NoError(t, err)

		_, err = svc.UpdateBook(context.Background(), 1, "新标题", "新作者", "", 2999)
		assert.ErrorIs(t, err, book.ErrYearInFuture)

		b, err := svc.GetBook(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "原标题", b.Title, "失败的更新不应该落库")
		assert.Equal(t, 2020, b.PublishedYear)

		t.Logf("✓ 校验失败，原记录未被修改")
	})
}

// TestPatchBook 测试部分更新
func TestPatchBook(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	t.Run("只更新提供的字段", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "原标题", "原作者", "原描述", 2020)
		require.NoError(t, err)

		b, err := svc.PatchBook(context.Background(), 1, book.Patch{
			Title: strPtr("新标题"),
		})

		require.NoError(t, err)
		assert.Equal(t, "新标题", b.Title, "提供的字段应该更新")
		assert.Equal(t, "原作者", b.Author, "未提供的字段保持原值")
		assert.Equal(t, "原描述", b.Description)
		assert.Equal(t, 2020, b.PublishedYear)

		t.Logf("✓ 部分更新成功，未提供字段保持原值")
	})

	t.Run("指针区分未提供和显式空值", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "标题", "作者", "描述", 2020)
		require.NoError(t, err)

		b, err := svc.PatchBook(context.Background(), 1, book.Patch{
			Description: strPtr(""),
		})

		require.NoError(t, err)
		assert.Equal(t, "", b.Description, "显式空串应该覆盖原值")
		assert.Equal(t, "标题", b.Title, "未提供的字段不受影响")

		t.Logf("✓ 显式空值正确覆盖")
	})

	t.Run("空载荷被拒绝", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "标题", "作者", "", 2020)
		require.NoError(t, err)

		_, err = svc.PatchBook(context.Background(), 1, book.Patch{})

		assert.ErrorIs(t, err, book.ErrEmptyPatch)

		t.Logf("✓ 空载荷正确被拒绝: %v", err)
	})

	t.Run("合并后校验失败时原记录保持不变", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "标题", "作者", "", 2020)
		require.NoError(t, err)

		_, err = svc.PatchBook(context.Background(), 1, book.Patch{
			Title:         strPtr("新标题"),
			PublishedYear: intPtr(2999),
		})
		assert.ErrorIs(t, err, book.ErrYearInFuture)

		b, err := svc.GetBook(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "标题", b.Title, "部分失败不应该只应用一半")

		t.Logf("✓ 全有或全无语义，失败的Patch完全不落库")
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		svc := newBookService()

		_, err := svc.PatchBook(context.Background(), 999, book.Patch{
			Title: strPtr("新标题"),
		})

		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 不存在的图书正确返回: %v", err)
	})
}

// TestDeleteBook 测试图书删除
func TestDeleteBook(t *testing.T) {
	t.Run("删除后查询不到", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "待删除", "作者", "", 2020)
		require.NoError(t, err)

		err = svc.DeleteBook(context.Background(), 1)
		require.NoError(t, err)

		_, err = svc.GetBook(context.Background(), 1)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 删除成功")
	})

	t.Run("删除不存在的图书", func(t *testing.T) {
		svc := newBookService()

		err := svc.DeleteBook(context.Background(), 999)

		assert.ErrorIs(t, err, book.ErrBookNotFound)

		t.Logf("✓ 不存在的图书正确返回: %v", err)
	})

	t.Run("删除后的编号可以重新使用", func(t *testing.T) {
		svc := newBookService()
		_, err := svc.CreateBook(context.Background(), 1, "第一版", "作者", "", 2020)
		require.NoError(t, err)

		err = svc.DeleteBook(context.Background(), 1)
		require.NoError(t, err)

		b, err := svc.CreateBook(context.Background(), 1, "第二版", "作者", "", 2021)
		require.NoError(t, err, "删除后的编号应该可以复用")
		assert.Equal(t, "第二版", b.Title)

		t.Logf("✓ 编号复用成功")
	})
}
