package models

type PaymentMethod struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"nombre"`
}
