package employee

import (
	"context"
	"log/slog"
	"time"

	employeeDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/employee"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context, companyID string) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, e *employeeDatamodel.Employee) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListEmployees filters by company when companyID is not empty.
func (s *Service) ListEmployees(ctx context.Context, companyID string) ([]*Employee, error) {
	rows, err := s.repo.GetAll(ctx, companyID)
	if err != nil {
		s.logger.Error("failed to list employees", "company_id", companyID, "error", err)
		return nil, err
	}

	out := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &Employee{
		ID:             uuid.NewString(),
		Name:           dto.Name,
		CPF:            dto.CPF,
		RG:             dto.RG,
		Endereco:       dto.Endereco,
		Cidade:         dto.Cidade,
		Estado:         dto.Estado,
		CEP:            dto.CEP,
		Telefone:       dto.Telefone,
		Email:          dto.Email,
		DataNascimento: dto.DataNascimento,
		Cargo:          dto.Cargo,
		PixKey:         dto.PixKey,
		Banco:          dto.Banco,
		CompanyID:      dto.CompanyID,
		Ativo:          true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if dto.Ativo != nil {
		e.Ativo = *dto.Ativo
	}

	if err := s.repo.Create(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", e.ID)
	return e, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e := FromDataModel(row)

	merge(&e.Name, dto.Name)
	merge(&e.CPF, dto.CPF)
	merge(&e.RG, dto.RG)
	merge(&e.Endereco, dto.Endereco)
	merge(&e.Cidade, dto.Cidade)
	merge(&e.Estado, dto.Estado)
	merge(&e.CEP, dto.CEP)
	merge(&e.Telefone, dto.Telefone)
	merge(&e.Email, dto.Email)
	merge(&e.Cargo, dto.Cargo)
	merge(&e.PixKey, dto.PixKey)
	merge(&e.Banco, dto.Banco)
	// an empty string clears the nullable columns
	if dto.DataNascimento != nil {
		e.DataNascimento = emptyToNil(dto.DataNascimento)
	}
	if dto.CompanyID != nil {
		e.CompanyID = emptyToNil(dto.CompanyID)
	}
	if dto.Ativo != nil {
		e.Ativo = *dto.Ativo
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return e, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func merge(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
