package api

import (
	"net/http"
	"time"

	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const userNotFoundMsg = "User not found. Please verify that you are using the correct details and try again."

// UserUpdate applies a partial profile update to the caller. The password
// field is stripped so it can only change through the password endpoints.
func (a *API) UserUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "You are not authorized to perform this action.",
			"requestID": requestID,
		})
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	delete(data, "password")
	delete(data, "_id")
	delete(data, "id")
	delete(data, "role")
	data["updatedAt"] = time.Now()

	res, err := a.users().UpdateByID(c.Request.Context(), userID, bson.M{"$set": data})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while processing your request.",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if res.MatchedCount == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   userNotFoundMsg,
			"requestID": requestID,
		})
		return
	}

	a.Activity.Log(userID, model.ActivityTypeUser, model.ActionUpdate, userID, model.TargetUser, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Your profile has been updated successfully.",
	})
}

func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "You are not authorized to perform this action.",
			"requestID": requestID,
		})
		return
	}

	res, err := a.users().DeleteOne(c.Request.Context(), bson.M{"_id": userID})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while deleting the user.",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if res.DeletedCount == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   userNotFoundMsg,
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User has been deleted successfully.",
	})
}

func (a *API) MyAccount(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "You are not authorized to perform this action.",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.users().FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   userNotFoundMsg,
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) UserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "User not found. Please verify the user ID and try again.",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.users().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&user); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "User not found. Please verify the user ID and try again.",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// userSearchFilter builds the store query for UserSearch. Split out so the
// matching rules are testable without a database.
func userSearchFilter(q, status, role string) bson.M {
	filter := bson.M{}

	if q != "" {
		regex := primitive.Regex{Pattern: q, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": regex},
			bson.M{"lastName": regex},
			bson.M{"email": regex},
		}
	}

	if status != "" {
		filter["status"] = status
	}

	if role != "" {
		filter["role"] = role
	}

	return filter
}

func (a *API) UserSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	filter := userSearchFilter(c.Query("q"), c.Query("status"), c.Query("role"))

	cur, err := a.users().Find(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while searching and filtering users.",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to search users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	users := []model.User{}
	if err := cur.All(c.Request.Context(), &users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while searching and filtering users.",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, users)
}
