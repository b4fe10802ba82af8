package models

type Laboratory struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"type:varchar(150);not null" json:"nombre"`
	Capacity int    `gorm:"not null" json:"capacidad_personas"`
}

type Experiment struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	Name              string `gorm:"type:varchar(150);not null" json:"nombre"`
	CreationYear      int    `gorm:"not null" json:"fecha_creacion"`
	EstimatedDuration int    `gorm:"not null" json:"duracion_estimada"`
}
