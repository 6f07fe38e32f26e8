package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Metrics HTTP指标中间件
//
// 教学要点：
// 1. path标签使用路由模板（如/api/v1/books/:id）而非真实URL,
//    否则每个ID都会产生一个新的时间序列,导致基数爆炸
// 2. 请求开始时递增in-progress,结束时递减,可观察当前并发量
// 3. 耗时用Histogram记录,便于计算P95/P99
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 未注册的路由FullPath为空,统一归到unknown
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		metrics.DecGauge(metrics.HTTPRequestsInProgress)

		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": method,
			"path":   path,
		}, duration)

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
	}
}
