package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rsmanito/expense-cards/models"
	"github.com/rsmanito/expense-cards/storage/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

func (s *Service) RegisterUser(ctx context.Context, req *models.RegisterUserRequest) error {
	uuid4 := uuid.New()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 8)
	if err != nil {
		log.Default().Printf("Failed to hash password: %v", err)
		return err
	}

	if err := s.st.CreateUser(ctx, postgres.CreateUserParams{
		ID:       pgtype.UUID{Bytes: uuid4, Valid: true},
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		log.Default().Printf("Failed to create user: %v", err)
		return err
	}

	return nil
}

func (s *Service) LoginUser(ctx context.Context, req *models.LoginUserRequest) (res *models.UserLoginResponse, err error) {
	user, err := s.st.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrInvalidCreds
		}
		log.Default().Println("Failed to get user: ", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCreds
	}

	userID := uuid.UUID(user.ID.Bytes)

	token, refresh, err := s.generateTokens(userID)
	if err != nil {
		log.Default().Println("Failed to generate tokens: ", err)
		return nil, errors.New("failed to authorize")
	}

	err = s.st.SaveUserTokens(ctx, postgres.SaveUserTokensParams{
		UserID:       pgtype.UUID{Bytes: userID, Valid: true},
		Token:        []byte(token),
		RefreshToken: []byte(refresh),
	})
	if err != nil {
		log.Default().Println("Failed to save token: ", err)
		return nil, err
	}

	return &models.UserLoginResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}

// RefreshToken handles token refresh logic
func (s *Service) RefreshToken(ctx context.Context, req *models.RefreshTokenRequest) (*models.UserLoginResponse, error) {
	signingKey := []byte(s.cfg.JWT_SIGNING_KEY)

	// Validate Access Token
	_, err := s.validateToken(req.Token, signingKey)
	if err == nil {
		log.Println("Access token is still valid, returning existing tokens")
		return &models.UserLoginResponse{
			Token:        req.Token,
			RefreshToken: req.RefreshToken,
		}, nil
	}

	log.Printf("Access token invalid or expired: %v", err)

	// Validate refresh token
	refreshClaims, err := s.validateToken(req.RefreshToken, signingKey)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Println("Refresh token is expired")
			return nil, models.ErrTokensExpired
		}

		log.Printf("Failed to parse refresh token: %v", err)
		return nil, models.ErrInvalidCreds
	}

	sub, err := refreshClaims.GetSubject()
	if err != nil || sub == "" {
		log.Println("Refresh token missing 'sub' field")
		return nil, models.ErrInvalidCreds
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		log.Printf("Failed to parse subject as UUID: %v", err)
		return nil, models.ErrInvalidCreds
	}

	// Only the most recently issued refresh token may be exchanged.
	stored, err := s.st.GetUserTokens(ctx, pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		log.Printf("Failed to load stored tokens: %v", err)
		return nil, models.ErrInvalidCreds
	}
	if string(stored.RefreshToken) != req.RefreshToken {
		log.Println("Refresh token does not match the stored one")
		return nil, models.ErrInvalidCreds
	}

	newToken, newRefresh, err := s.generateTokens(userID)
	if err != nil {
		log.Printf("Failed to generate new tokens: %v", err)
		return nil, errors.New("failed to refresh tokens")
	}

	err = s.st.SaveUserTokens(ctx, postgres.SaveUserTokensParams{
		UserID:       pgtype.UUID{Bytes: userID, Valid: true},
		Token:        []byte(newToken),
		RefreshToken: []byte(newRefresh),
	})
	if err != nil {
		log.Printf("Failed to save new tokens: %v", err)
		return nil, errors.New("failed to refresh tokens")
	}

	log.Println("[INFO] Tokens refreshed successfully")
	return &models.UserLoginResponse{
		Token:        newToken,
		RefreshToken: newRefresh,
	}, nil
}

// validateToken extracts claims from a JWT token and verifies its signature
func (s *Service) validateToken(tokenStr string, signingKey []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims format")
	}

	return claims, nil
}

// generateTokens generates access and refresh tokens signed with a key from config.
func (s *Service) generateTokens(userID uuid.UUID) (string, string, error) {
	signingKey := []byte(s.cfg.JWT_SIGNING_KEY)
	now := time.Now()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(accessTokenTTL).Unix(),
	}).SignedString(signingKey)
	if err != nil {
		log.Default().Println("Failed to create token: ", err)
		return "", "", err
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
		"typ": "refresh",
	}).SignedString(signingKey)
	if err != nil {
		log.Default().Println("Failed to create token: ", err)
		return "", "", err
	}

	return token, refresh, nil
}
