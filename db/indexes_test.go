package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func dupKeyErr(msg string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: msg},
		},
	}
}

func TestIsDuplicateKeyOn(t *testing.T) {
	usernameErr := dupKeyErr(`E11000 duplicate key error collection: vidshare.users index: username_1 dup key: { username: "bob" }`)
	emailErr := dupKeyErr(`E11000 duplicate key error collection: vidshare.users index: email_1 dup key: { email: "bob@example.com" }`)

	assert.True(t, IsDuplicateKey(usernameErr))
	assert.True(t, IsDuplicateKeyOn(usernameErr, "username"))
	assert.False(t, IsDuplicateKeyOn(usernameErr, "email"))

	assert.True(t, IsDuplicateKeyOn(emailErr, "email"))
	assert.False(t, IsDuplicateKeyOn(emailErr, "username"))

	assert.False(t, IsDuplicateKeyOn(errors.New("connection reset"), "username"))
}
