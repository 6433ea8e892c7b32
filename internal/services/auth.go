package services

import (
  "context"
  "time"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/requestdata"
)

// AuthService issues and verifies the bearer token handed out at
// signup. The token carries only the user id; there is no refresh flow
// and nothing is persisted server-side.
type AuthService interface {
  IssueToken(userID uuid.UUID) (string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type JWTClaims struct {
  jwt.RegisteredClaims
}

type authService struct {
  log          *logger.Logger
  jwtSecretKey string
  tokenTTL     time.Duration
}

func NewAuthService(log *logger.Logger, jwtSecretKey string, tokenTTL time.Duration) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    log:          serviceLog,
    jwtSecretKey: jwtSecretKey,
    tokenTTL:     tokenTTL,
  }
}

func (as *authService) IssueToken(userID uuid.UUID) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   userID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.tokenTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, apierr.Unauthorized("failed to parse token: %v", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, apierr.Unauthorized("invalid or expired token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, apierr.Unauthorized("invalid user id in token")
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}
