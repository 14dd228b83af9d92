package dto

// LoginRequest credenciales; Login acepta username o email.
type LoginRequest struct {
	Login    string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del empleado autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"user"`
}
