package dto

import (
	"github.com/google/uuid"

	"akademiku_backend/internals/features/academies/model"
)

type AcademyRequest struct {
	AcademyName    string  `json:"academy_name" validate:"required,min=1,max=255"`
	AcademyEmail   *string `json:"academy_email" validate:"omitempty,email,max=255"`
	AcademyPhone   *string `json:"academy_phone" validate:"omitempty,max=50"`
	AcademyAddress *string `json:"academy_address"`
}

type AcademyResponse struct {
	AcademyID        uuid.UUID `json:"academy_id"`
	AcademyName      string    `json:"academy_name"`
	AcademyEmail     *string   `json:"academy_email,omitempty"`
	AcademyPhone     *string   `json:"academy_phone,omitempty"`
	AcademyAddress   *string   `json:"academy_address,omitempty"`
	AcademyIsActive  bool      `json:"academy_is_active"`
	AcademyCreatedAt string    `json:"academy_created_at"`
}

func (r *AcademyRequest) ToModel() *model.AcademyModel {
	return &model.AcademyModel{
		AcademyName:    r.AcademyName,
		AcademyEmail:   r.AcademyEmail,
		AcademyPhone:   r.AcademyPhone,
		AcademyAddress: r.AcademyAddress,
	}
}

func ToAcademyResponse(m *model.AcademyModel) *AcademyResponse {
	return &AcademyResponse{
		AcademyID:        m.AcademyID,
		AcademyName:      m.AcademyName,
		AcademyEmail:     m.AcademyEmail,
		AcademyPhone:     m.AcademyPhone,
		AcademyAddress:   m.AcademyAddress,
		AcademyIsActive:  m.AcademyIsActive,
		AcademyCreatedAt: m.AcademyCreatedAt.Format("2006-01-02 15:04:05"),
	}
}
