package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：借阅模块集成测试
//
// 测试场景覆盖：
// 1. 借书（同一本书最多一条未归还记录）
// 2. 还书（幂等操作，重复还书不报错）
// 3. 还书后图书可再次借出
// 4. 借阅记录查询与过滤

// TestRentalCreate 测试借书功能
func TestRentalCreate(t *testing.T) {
	RequireServer(t)

	userID, _ := RegisterTestUser(t, "renter")
	bookID := CreateTestBook(t, "《借阅测试》")

	t.Run("正常借书", func(t *testing.T) {
		rentReq := map[string]interface{}{
			"user_id": userID,
			"book_id": bookID,
		}

		resp := PostJSON(t, BaseURL+"/rentals", rentReq, "")

		require.Equal(t, 0, resp.Code, "借书应该成功: %s", resp.Message)

		var data RentalData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析借阅响应失败")

		assert.NotZero(t, data.ID, "借阅ID应该大于0")
		assert.Equal(t, userID, data.UserID)
		assert.Equal(t, bookID, data.BookID)
		assert.False(t, data.Returned, "新借阅应该是未归还状态")
		assert.NotEmpty(t, data.RentedAt, "应该记录借出时间")

		t.Logf("✓ 借书成功，借阅ID: %d", data.ID)
	})

	t.Run("已借出的图书不能再借", func(t *testing.T) {
		otherUserID, _ := RegisterTestUser(t, "other_renter")
		rentReq := map[string]interface{}{
			"user_id": otherUserID,
			"book_id": bookID, // 上个子测试借走的书
		}

		resp := PostJSON(t, BaseURL+"/rentals", rentReq, "")

		assert.Equal(t, 40002, resp.Code, "已借出的图书应该返回冲突错误码")

		t.Logf("✓ 重复借书正确被拒绝: %s", resp.Message)
	})

	t.Run("用户不存在应失败", func(t *testing.T) {
		rentReq := map[string]interface{}{
			"user_id": 999999999,
			"book_id": CreateTestBook(t, "《无主借阅》"),
		}

		resp := PostJSON(t, BaseURL+"/rentals", rentReq, "")

		assert.Equal(t, 40401, resp.Code, "不存在的用户应该返回404错误码")

		t.Logf("✓ 不存在的用户正确被拒绝: %s", resp.Message)
	})

	t.Run("图书不存在应失败", func(t *testing.T) {
		rentReq := map[string]interface{}{
			"user_id": userID,
			"book_id": 999999999,
		}

		resp := PostJSON(t, BaseURL+"/rentals", rentReq, "")

		assert.Equal(t, 40402, resp.Code, "不存在的图书应该返回404错误码")

		t.Logf("✓ 不存在的图书正确被拒绝: %s", resp.Message)
	})
}

// TestRentalReturn 测试还书功能
func TestRentalReturn(t *testing.T) {
	RequireServer(t)

	userID, _ := RegisterTestUser(t, "returner")
	bookID := CreateTestBook(t, "《还书测试》")
	rentalID := RentTestBook(t, userID, bookID)

	t.Run("正常还书", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/rentals/%d/return", BaseURL, rentalID), nil, "")

		require.Equal(t, 0, resp.Code, "还书应该成功: %s", resp.Message)

		var data RentalData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.True(t, data.Returned, "还书后应该是已归还状态")
		assert.NotEmpty(t, data.ReturnedAt, "应该记录归还时间")

		t.Logf("✓ 还书成功，归还时间: %s", data.ReturnedAt)
	})

	t.Run("重复还书是幂等操作", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/rentals/%d/return", BaseURL, rentalID), nil, "")

		assert.Equal(t, 0, resp.Code, "重复还书不应该报错: %s", resp.Message)

		var data RentalData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.True(t, data.Returned, "状态应该保持已归还")

		t.Logf("✓ 重复还书幂等返回")
	})

	t.Run("还书后图书可再次借出", func(t *testing.T) {
		otherUserID, _ := RegisterTestUser(t, "second_renter")
		rentReq := map[string]interface{}{
			"user_id": otherUserID,
			"book_id": bookID,
		}

		resp := PostJSON(t, BaseURL+"/rentals", rentReq, "")

		assert.Equal(t, 0, resp.Code, "归还后的图书应该可以再借: %s", resp.Message)

		t.Logf("✓ 归还后的图书成功再次借出")
	})

	t.Run("不存在的借阅记录", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/rentals/999999999/return", nil, "")

		assert.Equal(t, 40404, resp.Code, "不存在的借阅记录应该返回404错误码")

		t.Logf("✓ 不存在的借阅记录正确返回: %s", resp.Message)
	})
}

// TestRentalQuery 测试借阅记录查询
func TestRentalQuery(t *testing.T) {
	RequireServer(t)

	userID, _ := RegisterTestUser(t, "history_user")
	bookID1 := CreateTestBook(t, "《历史1》")
	bookID2 := CreateTestBook(t, "《历史2》")
	rentalID := RentTestBook(t, userID, bookID1)
	RentTestBook(t, userID, bookID2)

	t.Run("查询借阅详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/rentals/%d", BaseURL, rentalID), "")

		require.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var data RentalData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, rentalID, data.ID)
		assert.Equal(t, userID, data.UserID)
		assert.Equal(t, bookID1, data.BookID)

		t.Logf("✓ 借阅详情查询成功")
	})

	t.Run("按用户过滤借阅记录", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/rentals?user_id=%d", BaseURL, userID), "")

		require.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var rentals []RentalData
		err := json.Unmarshal(resp.Data, &rentals)
		require.NoError(t, err)

		assert.Len(t, rentals, 2, "该用户应该有2条借阅记录")
		for _, r := range rentals {
			assert.Equal(t, userID, r.UserID, "过滤结果应该只包含该用户的记录")
		}

		t.Logf("✓ 按用户过滤返回 %d 条记录", len(rentals))
	})

	t.Run("查询不存在的借阅记录", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/rentals/999999999", "")

		assert.Equal(t, 40404, resp.Code, "不存在的借阅记录应该返回404错误码")

		t.Logf("✓ 不存在的借阅记录正确返回: %s", resp.Message)
	})
}
