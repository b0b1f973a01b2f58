package auth

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fenixclinic/clinic-api/internal/email"
	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/auth"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/security"
)

type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
}

type service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens *auth.TokenService
	mailer email.Service
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens *auth.TokenService, mailer email.Service) Service {
	return &service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
	}
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflict("a user with this email already exists", nil)
	}

	var birthDate *model.Date
	if req.BirthDate != "" {
		parsed, err := model.ParseDate(req.BirthDate)
		if err != nil {
			return nil, errors.Validation(err.Error(), err)
		}
		birthDate = &parsed
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Validation("password does not meet requirements", err)
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		BirthDate: birthDate,
		RoleID:    model.DefaultRoleID,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Best effort: registration never fails because of mail.
	go func() {
		if err := s.mailer.SendWelcome(context.Background(), user.Email, user.FirstName); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
		}
	}()

	return s.users.Get(ctx, user.ID)
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound) {
			return nil, errors.Unauthorized(nil)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.Unauthorized(nil)
	}
	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		return nil, errors.Unauthorized(err)
	}

	token, err := s.tokens.Generate(user.Email, user.FirstName, user.LastName)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.TokenResponse{Token: token, User: user}, nil
}
