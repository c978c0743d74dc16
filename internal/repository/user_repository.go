package repository

import (
	"formeo_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(id uint) error {
	now := time.Now()
	return r.DB.Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", &now).
		Error
}

func (r *UserRepository) ListByRole(role model.UserRole) ([]*model.User, error) {
	var users []*model.User
	err := r.DB.Where("role = ?", role).Order("name").Find(&users).Error
	return users, err
}
