package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanModifyOnlyForAuthor(t *testing.T) {
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	if !canModify(author, author) {
		t.Fatal("author must be allowed to modify their own entity")
	}
	if canModify(stranger, author) {
		t.Fatal("non-author must be denied")
	}
}

func TestCanModifyDeniesZeroActor(t *testing.T) {
	author := primitive.NewObjectID()
	if canModify(primitive.NilObjectID, author) {
		t.Fatal("zero actor id must be denied")
	}
	if canModify(primitive.NilObjectID, primitive.NilObjectID) {
		t.Fatal("zero actor id must be denied even against a zero author")
	}
}

func TestCurrentUserIDMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := currentUserID(c); ok {
		t.Fatal("expected missing userId to report not ok")
	}

	c.Set("userId", "not-an-object-id")
	if _, ok := currentUserID(c); ok {
		t.Fatal("expected wrong-typed userId to report not ok")
	}

	userID := primitive.NewObjectID()
	c.Set("userId", userID)
	got, ok := currentUserID(c)
	if !ok || got != userID {
		t.Fatalf("expected %s, got %s ok=%v", userID.Hex(), got.Hex(), ok)
	}
}
