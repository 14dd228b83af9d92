package entity

import "time"

// Roles válidos para Employee.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Estados de un empleado. Solo active permite iniciar sesión.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusAway     = "away"
	EmployeeStatusInactive = "inactive"
)

// ValidEmployeeStatus indica si s es un estado conocido.
func ValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusAway, EmployeeStatusInactive:
		return true
	}
	return false
}

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleBodeguero, RoleVendedor:
		return true
	}
	return false
}

// Employee usuario de una empresa (colaborador).
type Employee struct {
	ID           string
	CompanyID    string
	Name         string
	Username     string // único global, se usa para iniciar sesión
	Email        string
	PasswordHash string // bcrypt
	Role         string
	Status       string
	Active       bool
	Access       string
	Sector       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetStatus actualiza Status y deriva Active.
func (e *Employee) SetStatus(status string) {
	e.Status = status
	e.Active = status == EmployeeStatusActive
}
