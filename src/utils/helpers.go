package utils

import (
	"fmt"
	"log"
	"os"
	"resort/src/config"
	"resort/src/types"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint, role types.Role) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Username:    email,
		Role:        string(role),
		Permissions: types.PermissionsFor(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userId)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtKey)
	if err != nil {
		log.Printf("Error signing token: %s\n", err.Error())
		return "", err
	}
	return signed, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ResourceSlug builds a unique, URL-safe identifier for a resource.
func ResourceSlug(name string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s", slug.Make(name), suffix)
}

// ParseSlotTime parses a request timestamp in the API's canonical format and
// normalizes it to minute precision.
func ParseSlotTime(value string) (time.Time, error) {
	t, err := time.Parse(config.TIME_PARSE_FORMAT, value)
	if err != nil {
		return time.Time{}, err
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	return t, nil
}

// ParseSlotDate parses a bare calendar date.
func ParseSlotDate(value string) (time.Time, error) {
	return time.Parse(config.DATE_PARSE_FORMAT, value)
}
