package jwt

import (
	"context"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity provider. Tokens are
// HS256 with user_id, employee_id, role and type=access claims.
type Service interface {
	GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken mints a token the same shape the identity provider issues.
// Used by local tooling and tests.
func (j *JWTService) GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(claimsFor(identity, expiresAt))
	return tokenString, expiresAt, err
}

func claimsFor(identity user.Identity, expiresAt int64) map[string]interface{} {
	var employeeID interface{}
	if identity.EmployeeID != "" {
		employeeID = identity.EmployeeID
	}
	return map[string]interface{}{
		"user_id":     identity.UserID,
		"employee_id": employeeID,
		"role":        string(identity.Role),
		"type":        "access",
		"exp":         expiresAt,
	}
}

// IdentityFromContext reads the caller's identity from the verified token in ctx.
func IdentityFromContext(ctx context.Context) (user.Identity, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return user.Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Identity{}, auth.ErrMissingClaims
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return user.Identity{}, auth.ErrMissingClaims
	}
	employeeID, _ := claims["employee_id"].(string)

	return user.Identity{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       user.Role(role),
	}, nil
}

// NewContext attaches a freshly signed token for identity to ctx, as the
// verifier middleware would after a successful request.
func NewContext(ctx context.Context, ja *jwtauth.JWTAuth, identity user.Identity) (context.Context, error) {
	token, _, err := ja.Encode(claimsFor(identity, time.Now().Add(time.Hour).Unix()))
	if err != nil {
		return ctx, err
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}
