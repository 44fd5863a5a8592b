package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

var SECRET_KEY = os.Getenv("SECRET_KEY")

// JwtIssuer is stamped into every issued token and checked on every
// authenticated request.
const JwtIssuer = "EthioWork"

// generateToken issues a signed access token for the account. The jti
// claim is a fresh uuid so single tokens can be revoked on logout.
func generateToken(accountID uuid.UUID) (string, string, error) {
	jti := uuid.NewString()

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		Subject:   accountID.String(),
		ID:        jti,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := generatedAccessToken.SignedString([]byte(SECRET_KEY))
	if err != nil {
		return "", "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, jti, nil
}

// ValidatedToken parses and verifies an encoded token, rejecting any
// signing method other than HMAC.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(SECRET_KEY), nil
	})
}
