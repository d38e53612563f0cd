package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"public-pulse/internal/config"
	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrNotRegistered = errors.New("user has not completed signup")
)

// Identity is the verified subject of an identity-provider token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type Service interface {
	VerifyToken(token string) (*Identity, error)
	ResolveUser(ctx context.Context, identity *Identity) (*domain.User, error)
	Signup(ctx context.Context, identity *Identity, role domain.UserRole, input domain.SignupInput) (*domain.User, error)
	Profile(ctx context.Context, user *domain.User, role domain.UserRole) (*domain.User, error)
}

type service struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	cfg            *config.Config
	publicKey      *rsa.PublicKey
	parser         *jwt.Parser
}

func NewService(userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository, cfg *config.Config) (Service, error) {
	s := &service{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		cfg:            cfg,
	}

	var methods []string
	if cfg.IdentityPublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.IdentityPublicKey))
		if err != nil {
			return nil, fmt.Errorf("parse identity public key: %w", err)
		}
		s.publicKey = key
		methods = append(methods, "RS256", "RS384", "RS512")
	}
	if cfg.IdentitySecret != "" {
		methods = append(methods, "HS256", "HS384", "HS512")
	}
	if len(methods) == 0 {
		return nil, errors.New("either IDENTITY_PUBLIC_KEY or IDENTITY_SECRET must be set")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if cfg.IdentityIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.IdentityIssuer))
	}
	if cfg.IdentityAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.IdentityAudience))
	}
	s.parser = jwt.NewParser(opts...)

	return s, nil
}

func (s *service) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodRSA:
		return s.publicKey, nil
	case *jwt.SigningMethodHMAC:
		return []byte(s.cfg.IdentitySecret), nil
	default:
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
}

func (s *service) VerifyToken(tokenString string) (*Identity, error) {
	token, err := s.parser.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

func (s *service) ResolveUser(ctx context.Context, identity *Identity) (*domain.User, error) {
	user, err := s.userRepo.GetByExternalID(ctx, identity.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotRegistered
	}
	return user, nil
}

// Signup creates the local account for a verified identity. Government users must name
// an existing department and admins must present the admin secret.
func (s *service) Signup(ctx context.Context, identity *Identity, role domain.UserRole, input domain.SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, domain.InvalidInput("Name and email are required")
	}

	existing, err := s.userRepo.GetByExternalID(ctx, identity.Subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("User already exists")
	}

	user := &domain.User{
		ID:         uuid.New(),
		ExternalID: &identity.Subject,
		Name:       &name,
		Email:      &email,
		ProfileURL: input.ProfileURL,
		Role:       role,
	}

	switch role {
	case domain.RoleCitizen:
	case domain.RoleGovernment:
		if input.DepartmentID == nil {
			return nil, domain.InvalidInput("Department is required for government users")
		}
		department, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, domain.NotFound("Department not found")
		}
		user.DepartmentID = &department.ID
		user.Department = department
	case domain.RoleAdmin:
		if s.cfg.AdminSecretHash == "" {
			return nil, domain.Forbidden("Admin signup is disabled")
		}
		if bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminSecretHash), []byte(input.AdminSecret)) != nil {
			return nil, domain.Forbidden("Invalid admin secret")
		}
	default:
		return nil, domain.InvalidInput("Invalid role")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the caller's own account, provided it was created under role.
func (s *service) Profile(ctx context.Context, user *domain.User, role domain.UserRole) (*domain.User, error) {
	if user.Role != role {
		return nil, domain.Forbidden(fmt.Sprintf("Not a %s account", strings.ToLower(string(role))))
	}

	if user.DepartmentID != nil && user.Department == nil {
		department, err := s.departmentRepo.GetByID(ctx, *user.DepartmentID)
		if err != nil {
			return nil, err
		}
		user.Department = department
	}
	return user, nil
}
