package models

type Reagent struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"nombre"`
	Description string  `gorm:"type:text" json:"descripcion"`
	Price       float64 `gorm:"type:decimal(12,2);not null;default:0" json:"precio"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	CreatedOn   Date    `gorm:"type:date" json:"fecha_creacion"`
}

// Order is a request for a quantity of one reagent.
type Order struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ReagentID uint `gorm:"index;not null" json:"producto_id"`
	Quantity  int  `gorm:"not null" json:"cantidad"`
	OrderedOn Date `gorm:"type:date;index" json:"fecha_pedido"`
}
