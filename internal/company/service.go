package company

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	companyDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/company"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*companyDatamodel.Company, error)
	GetByIDs(ctx context.Context, ids []string) ([]*companyDatamodel.Company, error)
	GetByID(ctx context.Context, id string) (*companyDatamodel.Company, error)
	Create(ctx context.Context, c *companyDatamodel.Company) error
	Update(ctx context.Context, c *companyDatamodel.Company) error
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

func (s *Service) ListCompanies(ctx context.Context) ([]*Company, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get companies from repository", "error", err)
		return nil, err
	}
	return fromDataModels(rows), nil
}

// ListAuthorized returns every company for admins and only the listed ones
// for everybody else.
func (s *Service) ListAuthorized(ctx context.Context, principal *internal.User) ([]*Company, error) {
	if principal.IsAdmin() {
		return s.ListCompanies(ctx)
	}
	if len(principal.AuthorizedCompanyIDs) == 0 {
		return []*Company{}, nil
	}

	rows, err := s.repo.GetByIDs(ctx, principal.AuthorizedCompanyIDs)
	if err != nil {
		s.logger.Error("failed to get authorized companies", "user_id", principal.ID, "error", err)
		return nil, err
	}
	return fromDataModels(rows), nil
}

func (s *Service) GetCompany(ctx context.Context, id string) (*Company, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateCompany(ctx context.Context, dto CreateCompanyDTO) (*Company, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Company{
		ID:        uuid.NewString(),
		Name:      dto.Name,
		CNPJ:      dto.CNPJ,
		Endereco:  dto.Endereco,
		Cidade:    dto.Cidade,
		Estado:    dto.Estado,
		CEP:       dto.CEP,
		Telefone:  dto.Telefone,
		Email:     dto.Email,
		Ativa:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if dto.Ativa != nil {
		c.Ativa = *dto.Ativa
	}

	if err := s.repo.Create(ctx, ToDataModel(c)); err != nil {
		s.logger.Error("failed to create company", "name", c.Name, "error", err)
		return nil, err
	}

	s.logger.Info("company created", "company_id", c.ID)
	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, id string, dto UpdateCompanyDTO) (*Company, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := FromDataModel(row)

	merge(&c.Name, dto.Name)
	merge(&c.CNPJ, dto.CNPJ)
	merge(&c.Endereco, dto.Endereco)
	merge(&c.Cidade, dto.Cidade)
	merge(&c.Estado, dto.Estado)
	merge(&c.CEP, dto.CEP)
	merge(&c.Telefone, dto.Telefone)
	merge(&c.Email, dto.Email)
	if dto.Ativa != nil {
		c.Ativa = *dto.Ativa
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ToDataModel(c)); err != nil {
		s.logger.Error("failed to update company", "company_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("company updated", "company_id", id)
	return c, nil
}

func (s *Service) DeleteCompany(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("company deleted", "company_id", id)
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

func fromDataModels(rows []*companyDatamodel.Company) []*Company {
	out := make([]*Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
