package entity

import "time"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID        string
	Name      string
	Logo      string // URL; el almacenamiento del archivo es externo
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
