package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"
	"github.com/BarenJ/AplikasiPanti/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
	Revoke(ctx context.Context, claims *session.Claims) error
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin staff doctor nurse"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
}

type LoginResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type UserUsecase struct {
	repo   *repository.UserRepository
	tokens TokenIssuer
	log    *zap.Logger
	now    func() time.Time
}

func NewUserUsecase(repo *repository.UserRepository, tokens TokenIssuer, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, tokens: tokens, log: log, now: time.Now}
}

func (u *UserUsecase) Login(username, password string) (*LoginResult, error) {
	invalid := apperr.Unauthorized("Username atau password salah")

	// 1. Cari user aktif
	user, err := u.repo.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	if !user.IsActive {
		return nil, invalid
	}

	// 2. Bandingkan password (input vs hash di DB)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		u.log.Info("login gagal", zap.String("username", user.Username))
		return nil, invalid
	}

	// 3. Catat waktu login & buat token
	now := u.now()
	if err := u.repo.TouchLastLogin(user.ID, now); err != nil {
		return nil, wrapErr(err)
	}
	user.LastLogin = &now

	token, expiresAt, err := u.tokens.Issue(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u.log.Info("login berhasil", zap.String("username", user.Username), zap.String("role", user.Role))
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (u *UserUsecase) Logout(ctx context.Context, claims *session.Claims) error {
	if err := u.tokens.Revoke(ctx, claims); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *UserUsecase) Me(id uint) (*model.User, error) {
	user, err := u.repo.GetByID(id)
	if err != nil {
		return nil, wrapErr(notFoundAs(err, "User tidak ditemukan"))
	}
	return user, nil
}

func (u *UserUsecase) List() ([]model.User, error) {
	users, err := u.repo.GetAll()
	return users, wrapErr(err)
}

func (u *UserUsecase) Create(in CreateUserInput) (*model.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation("password", "Password minimal 6 karakter")
	}

	username := strings.TrimSpace(in.Username)
	if _, err := u.repo.GetByUsername(username); err == nil {
		return nil, apperr.Conflict("Username sudah digunakan")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapErr(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user := model.User{
		Username:     username,
		PasswordHash: string(hashed),
		FullName:     in.FullName,
		Role:         in.Role,
		Email:        in.Email,
		Phone:        in.Phone,
		IsActive:     true,
	}
	if err := u.repo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Username sudah digunakan")
		}
		return nil, wrapErr(err)
	}
	u.log.Info("user dibuat", zap.String("username", user.Username), zap.String("role", user.Role))
	return &user, nil
}

// Delete menolak penghapusan admin pertama dan akun sendiri.
func (u *UserUsecase) Delete(id, actorID uint) error {
	if id == actorID {
		return apperr.Conflict("Tidak dapat menghapus akun sendiri")
	}
	firstAdmin, err := u.repo.FirstAdminID()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapErr(err)
	}
	if firstAdmin != 0 && id == firstAdmin {
		return apperr.Conflict("Admin utama tidak dapat dihapus")
	}
	if err := u.repo.Delete(id); err != nil {
		return wrapErr(notFoundAs(err, "User tidak ditemukan"))
	}
	u.log.Info("user dihapus", zap.Uint("id", id), zap.Uint("by", actorID))
	return nil
}

func (u *UserUsecase) ChangePassword(id uint, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperr.Validation("new_password", "Password minimal 6 karakter")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := u.repo.UpdatePassword(id, string(hashed)); err != nil {
		return wrapErr(notFoundAs(err, "User tidak ditemukan"))
	}
	return nil
}
