package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：分类模块集成测试
//
// 测试场景覆盖：
// 1. 分类创建（名称唯一性）
// 2. 图书挂分类（幂等操作）
// 3. 图书摘分类（幂等操作）
// 4. 图书分类列表

// generateCategoryName 生成唯一的分类名
func generateCategoryName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// createTestCategory 创建测试分类并返回分类ID
func createTestCategory(t *testing.T, name string) uint {
	resp := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, "")
	require.Equal(t, 0, resp.Code, "创建分类失败: %s", resp.Message)

	var data CategoryData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析分类响应失败")

	return data.ID
}

// TestCategoryCreate 测试分类创建功能
func TestCategoryCreate(t *testing.T) {
	RequireServer(t)

	t.Run("正常创建分类", func(t *testing.T) {
		name := generateCategoryName("科幻")
		resp := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, "")

		require.Equal(t, 0, resp.Code, "创建应该成功: %s", resp.Message)

		var data CategoryData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.NotZero(t, data.ID, "分类ID应该大于0")
		assert.Equal(t, name, data.Name, "分类名应该一致")

		t.Logf("✓ 创建成功，分类ID: %d", data.ID)
	})

	t.Run("重名分类应失败", func(t *testing.T) {
		name := generateCategoryName("重名")

		resp1 := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, "")
		require.Equal(t, 0, resp1.Code, "第一次创建应该成功")

		resp2 := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, "")
		assert.Equal(t, 40004, resp2.Code, "重名分类应该返回冲突错误码")

		t.Logf("✓ 重名分类正确被拒绝: %s", resp2.Message)
	})

	t.Run("空分类名应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/categories", map[string]string{"name": ""}, "")

		assert.NotEqual(t, 0, resp.Code, "空分类名应该失败")

		t.Logf("✓ 空分类名正确被拒绝: %s", resp.Message)
	})

	t.Run("分类列表包含新建的分类", func(t *testing.T) {
		name := generateCategoryName("列表")
		categoryID := createTestCategory(t, name)

		resp := GetJSON(t, BaseURL+"/categories", "")
		require.Equal(t, 0, resp.Code, "查询列表应该成功: %s", resp.Message)

		var categories []CategoryData
		err := json.Unmarshal(resp.Data, &categories)
		require.NoError(t, err)

		found := false
		for _, c := range categories {
			if c.ID == categoryID {
				found = true
				assert.Equal(t, name, c.Name)
			}
		}
		assert.True(t, found, "列表应该包含新建的分类")

		t.Logf("✓ 分类列表共 %d 个分类", len(categories))
	})
}

// TestCategoryAssign 测试图书挂分类功能
func TestCategoryAssign(t *testing.T) {
	RequireServer(t)

	bookID := CreateTestBook(t, "《分类测试》")
	categoryID := createTestCategory(t, generateCategoryName("文学"))

	assignURL := fmt.Sprintf("%s/books/%d/categories", BaseURL, bookID)
	assignReq := map[string]interface{}{"category_id": categoryID}

	t.Run("正常挂分类", func(t *testing.T) {
		resp := PostJSON(t, assignURL, assignReq, "")

		assert.Equal(t, 0, resp.Code, "挂分类应该成功: %s", resp.Message)

		t.Logf("✓ 挂分类成功")
	})

	t.Run("重复挂分类是幂等操作", func(t *testing.T) {
		resp := PostJSON(t, assignURL, assignReq, "")

		assert.Equal(t, 0, resp.Code, "重复挂分类不应该报错: %s", resp.Message)

		listResp := GetJSON(t, assignURL, "")
		require.Equal(t, 0, listResp.Code)

		var categories []CategoryData
		err := json.Unmarshal(listResp.Data, &categories)
		require.NoError(t, err)

		assert.Len(t, categories, 1, "重复挂分类不应该产生重复关联")

		t.Logf("✓ 重复挂分类幂等返回，关联数仍为 %d", len(categories))
	})

	t.Run("图书分类列表", func(t *testing.T) {
		secondCategoryID := createTestCategory(t, generateCategoryName("历史"))
		resp := PostJSON(t, assignURL, map[string]interface{}{"category_id": secondCategoryID}, "")
		require.Equal(t, 0, resp.Code)

		listResp := GetJSON(t, assignURL, "")
		require.Equal(t, 0, listResp.Code, "查询应该成功: %s", listResp.Message)

		var categories []CategoryData
		err := json.Unmarshal(listResp.Data, &categories)
		require.NoError(t, err)

		assert.Len(t, categories, 2, "图书应该挂了2个分类")

		t.Logf("✓ 图书分类列表返回 %d 个分类", len(categories))
	})

	t.Run("摘除分类", func(t *testing.T) {
		resp := DeleteJSON(t, fmt.Sprintf("%s/%d", assignURL, categoryID), "")

		assert.Equal(t, 0, resp.Code, "摘除分类应该成功: %s", resp.Message)

		listResp := GetJSON(t, assignURL, "")
		require.Equal(t, 0, listResp.Code)

		var categories []CategoryData
		err := json.Unmarshal(listResp.Data, &categories)
		require.NoError(t, err)

		for _, c := range categories {
			assert.NotEqual(t, categoryID, c.ID, "摘除的分类不应该还在列表里")
		}

		t.Logf("✓ 摘除分类成功")
	})

	t.Run("重复摘除分类是幂等操作", func(t *testing.T) {
		resp := DeleteJSON(t, fmt.Sprintf("%s/%d", assignURL, categoryID), "")

		assert.Equal(t, 0, resp.Code, "重复摘除不应该报错: %s", resp.Message)

		t.Logf("✓ 重复摘除幂等返回")
	})

	t.Run("分类不存在应失败", func(t *testing.T) {
		resp := PostJSON(t, assignURL, map[string]interface{}{"category_id": 999999999}, "")

		assert.Equal(t, 40403, resp.Code, "不存在的分类应该返回404错误码")

		t.Logf("✓ 不存在的分类正确被拒绝: %s", resp.Message)
	})

	t.Run("图书不存在应失败", func(t *testing.T) {
		url := BaseURL + "/books/999999999/categories"
		resp := PostJSON(t, url, assignReq, "")

		assert.Equal(t, 40402, resp.Code, "不存在的图书应该返回404错误码")

		t.Logf("✓ 不存在的图书正确被拒绝: %s", resp.Message)
	})
}
