package entity

// Patient is resolved by email and never mutated by the scheduler.
type Patient struct {
	ID       int64  `gorm:"column:patient_id;primaryKey;autoIncrement" json:"patient_id"`
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
}

func (Patient) TableName() string {
	return "patients"
}
