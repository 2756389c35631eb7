package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"fastenhub/internal/domain"
	"fastenhub/internal/repos"
)

var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Admins *repos.AdminRepo
}

func (s *AuthService) Login(sid, username, password string) (*domain.Admin, error) {
	a, err := s.Admins.ByUsername(username)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Admins.BindSession(sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Admins.UnbindSession(sid)
}

func (s *AuthService) CurrentAdmin(sid string) (*domain.Admin, error) {
	return s.Admins.SessionAdmin(sid)
}
