package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/repository"
	"github.com/MeiyuTech/aet-backend/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	Repo   *repository.AdminRepository
	Secret string
	TTL    time.Duration
}

func NewAuthService(repo *repository.AdminRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Repo: repo, Secret: secret, TTL: ttl}
}

func (s *AuthService) Login(email, password string) (string, *entity.Admin, error) {
	admin, err := s.Repo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.ID, admin.Role, s.Secret, s.TTL)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
