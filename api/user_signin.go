package api

import (
	"errors"
	"net/http"

	"vidshare/backend/model"
	"vidshare/backend/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signInBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) SignIn(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signInBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User
	err := a.users().FindOne(c.Request.Context(), bson.M{"email": validators.NormalizeEmail(data.Email)}).Decode(&user)
	if err != nil {
		// An unknown email and a wrong password must be indistinguishable
		if !errors.Is(err, mongo.ErrNoDocuments) {
			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "The provided credentials are invalid.",
			"requestID": requestID,
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)) != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "The provided credentials are invalid.",
			"requestID": requestID,
		})
		return
	}

	token, err := a.makeToken(&user)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to sign session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
