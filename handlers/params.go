package handlers

import (
	"strconv"

	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// intParam parses a positive integer path parameter and writes a 400 when it is malformed.
func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		utils.RespondError(c, utils.InvalidInput("invalid "+name))
		return 0, false
	}
	return n, true
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || n <= 0 {
		utils.RespondError(c, utils.InvalidInput("invalid "+name))
		return 0, false
	}
	return n, true
}

// bindJSON decodes the body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.NewAppError(utils.KindInvalidInput, "invalid input", err))
		return false
	}
	return true
}

// firstNonZero returns the first non-zero id, letting bodies use either name for a field.
func firstNonZero(ids ...int) int {
	for _, id := range ids {
		if id != 0 {
			return id
		}
	}
	return 0
}
