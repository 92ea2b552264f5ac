package service

import (
	"errors"
	"fmt"

	"github.com/formpulse/formpulse/internal/auth"
	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/model"
	"github.com/formpulse/formpulse/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: jwtSecret}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("email", req.Email).Msg("Register: email lookup failed")
		return nil, fmt.Errorf("error checking existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Company:      req.Company,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Register: failed to create user")
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return s.buildAuthResponse(&user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Login: email lookup failed")
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to sign session token")
		return nil, fmt.Errorf("error creating session token: %w", err)
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("error preparing auth response: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: userDTO}, nil
}
