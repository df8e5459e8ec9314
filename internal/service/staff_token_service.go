package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultStaffTokenHours = 24 * 30

// StaffClaims 员工令牌声明
type StaffClaims struct {
	Staff string `json:"staff"`
	jwt.RegisteredClaims
}

// StaffTokenService 员工令牌签发与校验
type StaffTokenService struct {
	secret      []byte
	issuer      string
	expireHours int
	now         func() time.Time
}

// NewStaffTokenService 创建员工令牌服务
func NewStaffTokenService(secret, issuer string, expireHours int) *StaffTokenService {
	if expireHours <= 0 {
		expireHours = defaultStaffTokenHours
	}
	return &StaffTokenService{
		secret:      []byte(secret),
		issuer:      strings.TrimSpace(issuer),
		expireHours: expireHours,
		now:         time.Now,
	}
}

// Issue 签发令牌
func (s *StaffTokenService) Issue(staff string) (string, time.Time, error) {
	staff = strings.TrimSpace(staff)
	if staff == "" {
		return "", time.Time{}, fmt.Errorf("%w: staff name is empty", ErrInvalidToken)
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrAuthDisabled
	}
	now := s.now()
	expiresAt := now.Add(time.Duration(s.expireHours) * time.Hour)
	claims := StaffClaims{
		Staff: staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   staff,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse 校验令牌并返回声明
func (s *StaffTokenService) Parse(tokenString string) (*StaffClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrAuthDisabled
	}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}
	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(strings.TrimSpace(tokenString), &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.Staff) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
