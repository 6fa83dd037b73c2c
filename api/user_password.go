package api

import (
	"fmt"
	"net/http"
	"time"

	"vidshare/backend/model"
	"vidshare/backend/service"
	"vidshare/backend/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type changePasswordBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (a *API) ChangePassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "You are not authorized to perform this action.",
			"requestID": requestID,
		})
		return
	}

	var data changePasswordBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.users().FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "The provided credentials are invalid.",
			"requestID": requestID,
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.OldPassword)) != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "The provided credentials are invalid.",
			"requestID": requestID,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while processing your request.",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	_, err = a.users().UpdateByID(c.Request.Context(), userID, bson.M{
		"$set": bson.M{"password": string(hash), "updatedAt": time.Now()},
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while processing your request.",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your password has been updated successfully.",
	})
}

type forgotPasswordBody struct {
	Email string `json:"email"`
}

func (a *API) ForgotPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.users().FindOne(c.Request.Context(), bson.M{"email": validators.NormalizeEmail(data.Email)}).Decode(&user); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "No user found with the provided email address.",
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

		zap.L().Error("Failed to sign reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", a.Cfg.BaseURL, token)

	if err := a.Mailer.Send(user.Email, "Password Reset Request", service.ResetPasswordTemplate(resetLink)); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to send reset mail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "A password reset link has been sent to your email address.",
	})
}

type resetPasswordBody struct {
	NewPassword string `json:"newPassword"`
}

// ResetPassword runs behind the auth middleware: the bearer token is the
// signed token from the reset mail.
func (a *API) ResetPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "You are not authorized to perform this action.",
			"requestID": requestID,
		})
		return
	}

	var data resetPasswordBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while resetting the password.",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	res, err := a.users().UpdateByID(c.Request.Context(), userID, bson.M{
		"$set": bson.M{"password": string(hash), "updatedAt": time.Now()},
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "An unexpected error occurred while resetting the password.",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to reset password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if res.MatchedCount == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "User not found. Please verify that you are using the correct details and try again.",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your password has been reset successfully.",
	})
}
