package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin      = "admin"
	RoleFaturista  = "faturista"
	RoleEstoquista = "estoquista"
)

// User representa um usuário do sistema (pertence a uma Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro após persistir
	Name         string
	Role         string // admin, faturista, estoquista
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
