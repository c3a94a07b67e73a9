package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademyModel struct {
	AcademyID        uuid.UUID  `gorm:"column:academy_id;primaryKey;type:uuid" json:"academy_id"`
	AcademyName      string     `gorm:"column:academy_name;type:varchar(255);not null" json:"academy_name"`
	AcademyEmail     *string    `gorm:"column:academy_email;type:varchar(255)" json:"academy_email,omitempty"`
	AcademyPhone     *string    `gorm:"column:academy_phone;type:varchar(50)" json:"academy_phone,omitempty"`
	AcademyAddress   *string    `gorm:"column:academy_address;type:text" json:"academy_address,omitempty"`
	AcademyIsActive  bool       `gorm:"column:academy_is_active;default:true" json:"academy_is_active"`
	AcademyCreatedAt time.Time  `gorm:"column:academy_created_at;autoCreateTime" json:"academy_created_at"`
	AcademyUpdatedAt *time.Time `gorm:"column:academy_updated_at;autoUpdateTime" json:"academy_updated_at,omitempty"`
}

func (AcademyModel) TableName() string {
	return "academies"
}

func (m *AcademyModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademyID == uuid.Nil {
		m.AcademyID = uuid.New()
	}
	return nil
}
