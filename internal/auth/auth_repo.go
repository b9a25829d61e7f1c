package auth

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

const statusActive = "active"

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	FindActiveByLogin(ctx context.Context, identifier string) (*Credential, error)
	FindByID(ctx context.Context, id int64) (*Credential, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByLogin(ctx context.Context, identifier string) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).
		Where("(LOWER(email) = ? OR phone_no = ?) AND status = ?", strings.ToLower(identifier), identifier, statusActive).
		First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Credential, error) {
	var cred Credential
	if err := r.db.WithContext(ctx).First(&cred, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&Credential{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": gorm.Expr("now()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
