package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

// The demo account table lets the client function fully offline against a
// fixed set of role-bearing identities. A demo login mints a token carrying
// DemoTokenPrefix; the prefix is the discriminator that exempts the session
// from remote verification.
const (
	// DemoTokenPrefix marks locally-synthesized tokens.
	DemoTokenPrefix = "mock-jwt-token-"

	demoPassword   = "password123"
	demoSigningKey = "learnhub-demo-session"
	demoTokenTTL   = 24 * time.Hour
)

type demoAccount struct {
	ID         int
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Department string
	Position   string
	RoleID     int
}

var demoAccounts = map[string]demoAccount{
	"admin": {
		ID: 1, Username: "admin",
		FirstName: "System", LastName: "Administrator",
		Email:      "admin@contoso.com",
		Department: "IT", Position: "System Administrator",
		RoleID: domain.RoleAdmin,
	},
	"teacher": {
		ID: 2, Username: "teacher",
		FirstName: "Tracy", LastName: "Teacher",
		Email:      "teacher@contoso.com",
		Department: "Training", Position: "Senior Instructor",
		RoleID: domain.RoleTeacher,
	},
	"student": {
		ID: 3, Username: "student",
		FirstName: "Sam", LastName: "Student",
		Email:      "student@contoso.com",
		Department: "IT", Position: "Software Engineer",
		RoleID: domain.RoleStudent,
	},
}

func lookupDemoAccount(username string) (demoAccount, bool) {
	acct, ok := demoAccounts[username]
	return acct, ok
}

// demoPasswordMatches gates the whole table behind the fixed shared password.
func demoPasswordMatches(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(demoPassword)) == 1
}

// identity synthesizes the strongly-typed identity for a demo login.
func (a demoAccount) identity(now time.Time) *domain.User {
	return &domain.User{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Department: a.Department,
		Position:   a.Position,
		RoleID:     a.RoleID,
		CreatedAt:  now,
	}
}

// mintDemoToken produces a time-derived unique token for a demo session: the
// fixed prefix followed by a signed HS256 JWT.
func mintDemoToken(a demoAccount, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  a.Username,
		"role": a.RoleID,
		"iat":  now.Unix(),
		"exp":  now.Add(demoTokenTTL).Unix(),
		"jti":  uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(demoSigningKey))
	if err != nil {
		return "", err
	}
	return DemoTokenPrefix + signed, nil
}

// IsDemoUsername reports whether username resolves against the demo table.
func IsDemoUsername(username string) bool {
	_, ok := demoAccounts[username]
	return ok
}

// IsDemoToken reports whether token was synthesized locally.
func IsDemoToken(token string) bool {
	return strings.HasPrefix(token, DemoTokenPrefix)
}
