package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jobpilot/internal/logger"
	"jobpilot/internal/platform/postgres"
)

const (
	bcryptCost    = 10
	tokenLifetime = 7 * 24 * time.Hour
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("name, email and password are required")

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type Service struct {
	db     *gorm.DB
	secret []byte
	log    *logger.Logger
}

func NewService(pg *postgres.Service, jwtSecret string) *Service {
	return &Service{
		db:     pg.DB(),
		secret: []byte(jwtSecret),
		log:    logger.New("AuthService"),
	}
}

// NewTokenService builds a service without a database, enough for token
// issuing and verification.
func NewTokenService(jwtSecret string) *Service {
	return &Service{
		secret: []byte(jwtSecret),
		log:    logger.New("AuthService"),
	}
}

func (s *Service) Register(name, email, password string) (*User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return nil, "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.db.Create(user).Error; err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Login(email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueToken signs a 7-day HS256 token carrying the user id as subject.
func (s *Service) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// VerifyToken validates signature and expiry and returns the user id.
func (s *Service) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidCredentials
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return userID, nil
}
