package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// RoleAdmin: роль, дающая право изменять каталог
	RoleAdmin = "admin"

	issuer = "trivia-catalog"
)

var (
	// ErrTokenInvalid: токен не прошёл проверку подписи, формата или роли
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired: срок действия токена истёк
	ErrTokenExpired = errors.New("token is expired")
)

// AdminClaims содержит поля токена администратора
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminTokenService выпускает и проверяет токены администратора (HS256)
type AdminTokenService struct {
	secret []byte
	now    func() time.Time
}

// NewAdminTokenService создает сервис токенов; пустой секрет недопустим
func NewAdminTokenService(secret string) (*AdminTokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("admin secret is required")
	}
	return &AdminTokenService{secret: []byte(secret), now: time.Now}, nil
}

// GenerateAdminToken выпускает токен администратора на ttl
func (s *AdminTokenService) GenerateAdminToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()
	claims := &AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для %s: %v", subject, err)
		return "", err
	}
	return tokenString, nil
}

// ParseAdminToken проверяет токен и наличие роли администратора
func (s *AdminTokenService) ParseAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		log.Printf("[JWT] Токен отклонён: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: role %q is not allowed", ErrTokenInvalid, claims.Role)
	}
	return claims, nil
}
