package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"guest_id"`

	FirstName     string     `gorm:"size:100;not null" json:"first_name"`
	LastName      string     `gorm:"size:100;not null" json:"last_name"`
	Email         string     `gorm:"size:150;index" json:"email"`
	Phone         string     `gorm:"size:50" json:"phone"`
	Address       string     `gorm:"type:text" json:"address"`
	IDProofType   string     `gorm:"column:id_proof_type;size:50" json:"id_proof_type"`
	IDProofNumber string     `gorm:"column:id_proof_number;size:100" json:"id_proof_number"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Nationality   string     `gorm:"size:100" json:"nationality"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
