package entity

import "time"

// Roles válidos para User (conjunto cerrado; la autorización se decide en el
// borde HTTP, nunca dentro del núcleo de inventario).
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleClerk   = "CLERK"
)

// User representa un usuario autenticable del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	FullName     string
	Email        string
	Role         string // ADMIN / MANAGER / CLERK
	Status       string // ACTIVE / INACTIVE
	CreatedAt    time.Time
}

// IsActive indica si el usuario puede autenticarse.
func (u *User) IsActive() bool { return u.Status == StatusActive }

// ValidRole verifica que el rol pertenezca al conjunto cerrado.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClerk:
		return true
	}
	return false
}
