package httputil

import "github.com/gin-gonic/gin"

// WriteError はProblemDetailをレスポンスとして書き込む。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, problem)
}

// AbortWithError はProblemDetailを書き込み、後続のハンドラを中断する。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// BindJSON はリクエストボディをdstにバインドする。
// 失敗した場合は400を書き込んでfalseを返すので、呼び出し側はそのままreturnする。
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		WriteError(c, BadRequest("invalid request body"))
		return false
	}
	return true
}
