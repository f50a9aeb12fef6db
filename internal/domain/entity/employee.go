package entity

import "time"

// Roles de empleado. Los tokens JWT llevan el rol; la emisión de tokens
// ocurre fuera del API (cmd/token o el proveedor de identidad).
const (
	RoleAdmin      = "admin"
	RoleFarmaceuta = "farmaceuta"
	RoleAuxiliar   = "auxiliar"
)

// ValidRole reporta si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleFarmaceuta, RoleAuxiliar:
		return true
	}
	return false
}

// Employee actor de las transacciones de stock y las ventas.
// No guarda credenciales: es dato maestro, no cuenta de usuario.
type Employee struct {
	ID        string
	Name      string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
