package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string `json:"uid"`
	//has standard jwt field issued at, expires at etc
	jwt.RegisteredClaims
}
