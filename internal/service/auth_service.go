package service

import (
	"errors"

	"go-pos-ws/internal/model"
	"go-pos-ws/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.UserResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	pos *POSService
}

func NewAuthService(pos *POSService) AuthService {
	return &authService{pos: pos}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.pos.UserByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	s.pos.RecordLogin(user.ID)

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// The user must still exist in the state tree; a token survives a
	// snapshot fallback but its user may not.
	user, err := s.pos.UserByID(claims.UserID)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	resp := user.ToResponse()
	return &resp, nil
}
