package models

type Credential struct {
	Username     string `gorm:"primaryKey;size:100" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'barber'" json:"role"`
	BarberID     *uint  `gorm:"uniqueIndex" json:"barber_id,omitempty"`
}
