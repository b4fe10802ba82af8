package models

import "time"

// ScheduledTest links an experiment to the laboratory where it runs. The
// references are checked when the record is written, not enforced by the
// schema, so deleting an experiment or laboratory leaves existing tests alone.
type ScheduledTest struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ExperimentID uint      `gorm:"index;not null" json:"id_experimento"`
	LaboratoryID uint      `gorm:"index;not null" json:"id_laboratorio"`
	StartsAt     time.Time `gorm:"not null" json:"fecha_hora_inicio"`
}
