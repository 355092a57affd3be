package repository

import (
	"context"

	"appointment-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error)
}
