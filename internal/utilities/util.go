// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"log"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ethiowork-backend/internal/model"
)

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractAccount extracts the authenticated account from Gin context.
// It does not abort the request; returns an error when missing/invalid.
func ExtractAccount(c *gin.Context) (model.Account, error) {
	u, _ := c.Get("account")
	if u == nil {
		return model.Account{}, errors.New("Account information not provided")
	}

	account, ok := u.(model.Account)
	if !ok {
		return model.Account{}, errors.New("Failed to assert type")
	}
	return account, nil
}

// CreateAdmin creates an admin account with the given credentials in the provided database.
func CreateAdmin(email string, password string, db *gorm.DB) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	admin := model.Account{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}
