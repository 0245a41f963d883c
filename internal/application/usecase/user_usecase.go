package usecase

import (
	"fmt"
	"time"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

// UserUseCase consulta de perfil e administração de roles.
type UserUseCase struct {
	repo repository.UserRepository
}

func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Me devolve o perfil do usuário autenticado.
func (uc *UserUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user), nil
}

// UpdateRole troca o role de um usuário da mesma empresa. Operação de admin.
func (uc *UserUseCase) UpdateRole(companyID, userID, role string) (*dto.UserResponse, error) {
	switch role {
	case entity.RoleAdmin, entity.RoleFaturista, entity.RoleEstoquista:
	default:
		return nil, fmt.Errorf("%w: role desconhecido: %q", domain.ErrInvalidInput, role)
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, fmt.Errorf("user: atualizar role: %w", err)
	}
	return userToResponse(user), nil
}

func userToResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
