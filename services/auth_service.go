package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/models"
)

const tokenIssuer = "hostel-management"

// StaffClaims is the identity the authentication gate attaches to a request.
type StaffClaims struct {
	jwt.RegisteredClaims

	StaffID uint             `json:"id"`
	Role    models.StaffRole `json:"role"`
}

type AuthService struct {
	DB     *gorm.DB
	Log    *zap.Logger
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(db *gorm.DB, log *zap.Logger, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Log: log.Named("auth"), Secret: []byte(secret), TTL: ttl}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the credentials of an active staff member and issues a token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Staff, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, invalid("username and password are required")
	}

	var staff models.Staff
	if err := s.DB.WithContext(ctx).Where("username = ? AND active = ?", username, true).First(&staff).Error; err != nil {
		if isNotFound(err) {
			return "", nil, ErrUnauthorized
		}
		return "", nil, classify(s.Log, "login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		s.Log.Info("login rejected", zap.String("username", username))
		return "", nil, ErrUnauthorized
	}

	token, err := s.IssueToken(&staff)
	if err != nil {
		return "", nil, err
	}
	return token, &staff, nil
}

func (s *AuthService) IssueToken(staff *models.Staff) (string, error) {
	now := s.now()
	claims := StaffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(staff.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
		StaffID: staff.ID,
		Role:    staff.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies an HS256 staff token.
func (s *AuthService) ParseToken(tokenString string) (*StaffClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := &StaffClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !tok.Valid || claims.StaffID == 0 {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return claims, nil
}

// HashPassword is used when creating staff accounts.
func HashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", invalid("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type StaffInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      models.StaffRole
}

// CreateStaff adds an active staff account with a hashed password.
func (s *AuthService) CreateStaff(ctx context.Context, in StaffInput) (*models.Staff, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, invalid("username is required")
	}
	switch in.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleReceptionist:
	default:
		return nil, invalid("unknown role %q", in.Role)
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	staff := models.Staff{
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         in.Role,
		Active:       true,
	}
	if err := s.DB.WithContext(ctx).Create(&staff).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmtDuplicate("username", username)
		}
		return nil, classify(s.Log, "create staff", err)
	}
	s.Log.Info("staff created", zap.Uint("staff_id", staff.ID), zap.String("role", string(staff.Role)))
	return &staff, nil
}
