package api

import (
	"fmt"
	"net/http"
	"time"

	"vidshare/backend/db"
	"vidshare/backend/model"
	"vidshare/backend/service"
	"vidshare/backend/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signUpBody struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AcceptTerms bool   `json:"acceptTerms"`
}

func (a *API) SignUp(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signUpBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The unique index treats case variants as the same address
	data.Email = validators.NormalizeEmail(data.Email)

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	now := time.Now()
	user := model.User{
		Email:       data.Email,
		Password:    string(hash),
		Username:    data.Username,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Role:        model.RoleUser,
		Status:      "active",
		AcceptTerms: data.AcceptTerms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := a.users().InsertOne(c.Request.Context(), &user)
	if err != nil {
		if db.IsDuplicateKey(err) {
			msg := "An account with this email already exists."
			if db.IsDuplicateKeyOn(err, "username") {
				msg = "An account with this username already exists."
			}

			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"message":   msg,
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.ID = res.InsertedID.(primitive.ObjectID)

	// The mail round trip shouldn't hold the response back
	go a.sendActivationMail(&user)

	a.Activity.Log(user.ID, model.ActivityTypeUser, model.ActionCreate, user.ID, model.TargetUser, nil)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful! Please check your email to activate your account.",
	})
}

func (a *API) sendActivationMail(u *model.User) {
	token, err := a.makeToken(u)
	if err != nil {
		zap.L().Error("Failed to sign activation token", zap.Error(err))
		return
	}

	link := fmt.Sprintf("%s/activate?token=%s", a.Cfg.BaseURL, token)

	if err := a.Mailer.Send(u.Email, "Welcome to Our Service!", service.SignUpTemplate(u.Username, link)); err != nil {
		zap.L().Error("Failed to send activation mail", zap.Error(err), zap.String("email", u.Email))
	}
}
