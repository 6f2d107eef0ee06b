package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 14

var (
	// Player names are restricted to hexadecimal characters.
	playerNameRegex = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func IsValidPlayerName(name string) bool {
	return playerNameRegex.MatchString(name)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
