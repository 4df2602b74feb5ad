package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yashrajoria/streetwear-backend/models"
)

// SessionIDHeader carries the guest cart session id generated by the client.
const SessionIDHeader = "X-Session-ID"

const maxSessionIDLength = 64

// CartOwner resolves whose cart the request addresses: the actor's user id,
// else the guest session id from the header or cookie. The zero value means
// no owner could be resolved.
func CartOwner(c *gin.Context, cookieName string) models.CartOwner {
	if actor := GetActor(c); actor != nil {
		id := actor.UserID
		return models.CartOwner{UserID: &id}
	}

	sessionID := strings.TrimSpace(c.GetHeader(SessionIDHeader))
	if sessionID == "" && cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil {
			sessionID = strings.TrimSpace(cookie)
		}
	}
	if len(sessionID) > maxSessionIDLength {
		return models.CartOwner{}
	}
	return models.CartOwner{SessionID: sessionID}
}
