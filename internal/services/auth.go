package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/requestdata"
  "github.com/leopark123/ideahub/internal/types"
)

const (
  tokenTypeAccess  = "access"
  tokenTypeRefresh = "refresh"
)

type TokenPair struct {
  AccessToken  string   `json:"access_token"`
  RefreshToken string   `json:"refresh_token"`
  TokenType    string   `json:"token_type"`
}

type AuthService interface {
  Register(ctx context.Context, email, password, nickname string) (*types.User, error)
  Login(ctx context.Context, email, password string) (*TokenPair, error)
  Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
  refreshTTL   time.Duration
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL, refreshTTL time.Duration) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
    refreshTTL:   refreshTTL,
  }
}

func (as *authService) Register(ctx context.Context, email, password, nickname string) (*types.User, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  if email == "" || password == "" {
    return nil, apierr.InvalidRange("email and password are required")
  }

  exists, err := as.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("check email: %w", err))
  }
  if exists {
    return nil, apierr.Conflict("email %s is already registered", email)
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
  }

  if nickname == "" {
    nickname = strings.SplitN(email, "@", 2)[0]
  }

  user := &types.User{
    ID:             uuid.New(),
    Email:          email,
    HashedPassword: string(hashed),
    Nickname:       nickname,
    Role:           types.UserRoleUser,
    IsActive:       true,
  }
  if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
    as.log.Error("Register failed", "error", err)
    return nil, apierr.Internal(fmt.Errorf("create user: %w", err))
  }
  return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
  email = strings.ToLower(strings.TrimSpace(email))

  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load user: %w", err))
  }
  // Same answer for unknown email and bad password.
  if len(users) == 0 {
    return nil, apierr.Unauthorized("invalid email or password")
  }
  user := users[0]
  if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
    return nil, apierr.Unauthorized("invalid email or password")
  }
  if !user.IsActive {
    return nil, apierr.InvalidState("user account is disabled")
  }
  return as.issueTokens(user.ID)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
  userID, tokenType, err := as.parseToken(refreshToken)
  if err != nil {
    return nil, apierr.Unauthorized("invalid refresh token")
  }
  if tokenType != tokenTypeRefresh {
    return nil, apierr.Unauthorized("not a refresh token")
  }

  // Re-verify the account so disabled or deleted users cannot keep minting
  // fresh tokens.
  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load user: %w", err))
  }
  if len(users) == 0 {
    return nil, apierr.Unauthorized("user no longer exists")
  }
  if !users[0].IsActive {
    return nil, apierr.Unauthorized("user account is disabled")
  }
  return as.issueTokens(userID)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  userID, tokenType, err := as.parseToken(tokenString)
  if err != nil {
    return ctx, apierr.Unauthorized("invalid token")
  }
  if tokenType != tokenTypeAccess {
    return ctx, apierr.Unauthorized("not an access token")
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(userID uuid.UUID) (*TokenPair, error) {
  access, err := as.signToken(userID, tokenTypeAccess, as.accessTTL)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("sign access token: %w", err))
  }
  refresh, err := as.signToken(userID, tokenTypeRefresh, as.refreshTTL)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("sign refresh token: %w", err))
  }
  return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func (as *authService) signToken(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub":  userID.String(),
    "type": tokenType,
    "iat":  now.Unix(),
    "exp":  now.Add(ttl).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parseToken(tokenString string) (uuid.UUID, string, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return uuid.Nil, "", fmt.Errorf("parse token: %w", err)
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok {
    return uuid.Nil, "", fmt.Errorf("unexpected claims type")
  }
  sub, _ := claims["sub"].(string)
  userID, err := uuid.Parse(sub)
  if err != nil {
    return uuid.Nil, "", fmt.Errorf("parse subject: %w", err)
  }
  tokenType, _ := claims["type"].(string)
  return userID, tokenType, nil
}
