package repository

import (
	"context"

	"appointment-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error)
}
