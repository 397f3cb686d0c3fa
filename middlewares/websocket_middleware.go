package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// WSTicketMiddleware authenticates websocket upgrades with the short-lived
// ticket issued by the ws-ticket endpoint, passed as a query parameter.
func WSTicketMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket := c.Query("ticket")
		if ticket == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseWSTicket(secret, ticket)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("uid", claims.UID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
