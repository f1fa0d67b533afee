package models

type Barber struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	PhotoURL    *string `gorm:"size:255" json:"photo_url"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	IsCheckedIn bool    `gorm:"default:false" json:"is_checked_in"`
}
