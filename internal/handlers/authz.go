package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// canModify is the ownership guard for campground and review mutation: only
// the author may change or delete an entity. There is no elevated role.
func canModify(actorID, authorID primitive.ObjectID) bool {
	if actorID.IsZero() {
		return false
	}
	return actorID == authorID
}

// currentUserID reads the authenticated user id injected by the JWT
// middleware. ok is false for unauthenticated requests.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	if !ok || userID.IsZero() {
		return primitive.NilObjectID, false
	}
	return userID, true
}
