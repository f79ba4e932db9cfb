package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role tokens are issued with.
const RoleAdmin = "admin"

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 2 * time.Hour

var (
	// ErrInvalidCredentials is the single failure for login. Wrong email and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired marks a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers every other token defect.
	ErrTokenInvalid = errors.New("token invalid")
)

// AdminClaims is the JWT payload for admin tokens.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier checks the configured admin credential pair and issues tokens.
// The bcrypt hash of the password is computed once at construction and only
// compared afterwards; no request ever re-hashes.
type Verifier struct {
	email        string
	passwordHash []byte
	fallbackHash []byte
	secret       []byte
}

// NewVerifier hashes the admin password and prepares a fallback hash of
// random bytes, so that a login with an unknown email still costs one bcrypt
// comparison and its timing reveals nothing about which check failed.
func NewVerifier(adminEmail, adminPassword, jwtSecret string) (*Verifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating fallback credential: %w", err)
	}
	fallback, err := bcrypt.GenerateFromPassword(buf, bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing fallback credential: %w", err)
	}

	return &Verifier{
		email:        strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: hash,
		fallbackHash: fallback,
		secret:       []byte(jwtSecret),
	}, nil
}

// Login verifies the credential pair and returns a signed token.
func (v *Verifier) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(v.email)) == 1

	// Compare against the fallback hash when the email is wrong, so the
	// bcrypt work happens on every attempt.
	hash := v.fallbackHash
	if emailOK {
		hash = v.passwordHash
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !emailOK {
		return "", ErrInvalidCredentials
	}

	return v.generateJWT(email)
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims. Expiry is reported as ErrTokenExpired, every other defect as
// ErrTokenInvalid.
func (v *Verifier) ParseToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// generateJWT generates a signed token for the admin identity
func (v *Verifier) generateJWT(email string) (string, error) {
	claims := &AdminClaims{
		Email: email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(v.secret)
	if err != nil {
		return "", err
	}
	return t, nil
}
