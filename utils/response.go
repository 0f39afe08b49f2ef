package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes the success envelope {"status": "success", "data": ...}.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// JSONError writes the error envelope and stops the handler chain.
func JSONError(c *gin.Context, code int, errCode, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}
