package extra

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
	extraDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/extra"
	"github.com/frahmantamala/sistema-extras/internal/core/events"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	Create(ctx context.Context, e *extraDatamodel.Extra) error
	CreateBatch(ctx context.Context, extras []*extraDatamodel.Extra) error
	GetByID(ctx context.Context, id string) (*extraDatamodel.Extra, error)
	List(ctx context.Context, userID string) ([]*extraDatamodel.Extra, error)
	Update(ctx context.Context, e *extraDatamodel.Extra) error
	// UpdateStatus writes the status columns only if the stored status is
	// still from.
	UpdateStatus(ctx context.Context, e *extraDatamodel.Extra, from string) error
	Delete(ctx context.Context, id string) error
	ListWithDetails(ctx context.Context, filter Filter) ([]*extraDatamodel.ExtraDetail, error)
	Totals(ctx context.Context) (count int64, total float64, err error)
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) CreateExtra(ctx context.Context, principal *internal.User, dto CreateExtraDTO) (*Extra, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("extra validation failed", "error", err, "user_id", principal.ID)
		return nil, err
	}
	if !principal.CanAccessCompany(dto.CompanyID) {
		s.logger.Warn("company not authorized", "user_id", principal.ID, "company_id", dto.CompanyID)
		return nil, internal.ErrCompanyNotAuthorized
	}

	e := s.newExtra(principal, dto.EmployeeID, dto.CompanyID, dto.Setor, dto.Vaga,
		dto.DataEvento, dto.HoraEntrada, dto.HoraSaida, dto.Valor)

	if err := s.repo.Create(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("failed to create extra", "error", err, "user_id", principal.ID)
		return nil, err
	}

	s.logger.Info("extra created successfully",
		"extra_id", e.ID,
		"user_id", principal.ID,
		"company_id", e.CompanyID,
		"valor", e.Valor)
	return e, nil
}

// CreateBatch stores one extra per item, all or none.
func (s *Service) CreateBatch(ctx context.Context, principal *internal.User, dto CreateBatchDTO) ([]*Extra, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("batch validation failed", "error", err, "user_id", principal.ID)
		return nil, err
	}
	if !principal.CanAccessCompany(dto.CompanyID) {
		s.logger.Warn("company not authorized", "user_id", principal.ID, "company_id", dto.CompanyID)
		return nil, internal.ErrCompanyNotAuthorized
	}

	extras := make([]*Extra, 0, len(dto.Items))
	rows := make([]*extraDatamodel.Extra, 0, len(dto.Items))
	for _, item := range dto.Items {
		e := s.newExtra(principal, dto.EmployeeID, dto.CompanyID, dto.Setor, dto.Vaga,
			item.DataEvento, item.HoraEntrada, item.HoraSaida, item.Valor)
		extras = append(extras, e)
		rows = append(rows, ToDataModel(e))
	}

	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("failed to create extras batch", "error", err, "user_id", principal.ID, "items", len(rows))
		return nil, err
	}

	s.logger.Info("extras batch created", "user_id", principal.ID, "items", len(extras))
	return extras, nil
}

// ListExtras returns everything for managers and the caller's own extras
// otherwise.
func (s *Service) ListExtras(ctx context.Context, principal *internal.User) ([]*Extra, error) {
	userID := principal.ID
	if principal.IsManager() {
		userID = ""
	}
	return s.list(ctx, userID)
}

func (s *Service) ListByUser(ctx context.Context, principal *internal.User, userID string) ([]*Extra, error) {
	if !principal.IsManager() && principal.ID != userID {
		s.logger.Warn("unauthorized access to user extras", "user_id", principal.ID, "target_user_id", userID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return s.list(ctx, userID)
}

func (s *Service) GetExtra(ctx context.Context, principal *internal.User, id string) (*Extra, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsManager() && e.UserID != principal.ID {
		s.logger.Warn("unauthorized access to extra", "extra_id", id, "user_id", principal.ID, "extra_user_id", e.UserID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return e, nil
}

// UpdateExtra merges the edit, sends the extra back to pendente and
// invalidates its receipt.
func (s *Service) UpdateExtra(ctx context.Context, principal *internal.User, id string, dto UpdateExtraDTO) (*Extra, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && e.UserID != principal.ID {
		s.logger.Warn("unauthorized edit of extra", "extra_id", id, "user_id", principal.ID)
		return nil, internal.ErrUnauthorizedAccess
	}

	merge(&e.EmployeeID, dto.EmployeeID)
	merge(&e.DataEvento, dto.DataEvento)
	merge(&e.HoraEntrada, dto.HoraEntrada)
	merge(&e.HoraSaida, dto.HoraSaida)
	merge(&e.Setor, dto.Setor)
	merge(&e.Vaga, dto.Vaga)
	if dto.CompanyID != nil && *dto.CompanyID != e.CompanyID {
		if !principal.CanAccessCompany(*dto.CompanyID) {
			return nil, internal.ErrCompanyNotAuthorized
		}
		e.CompanyID = *dto.CompanyID
	}
	if dto.Valor != nil {
		e.Valor = validation.RoundValor(*dto.Valor)
	}
	previous := e.Status
	e.Reset(time.Now().UTC())

	if err := s.repo.Update(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("failed to update extra", "error", err, "extra_id", id)
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.NewExtraResetEvent(e.ID, principal.ID)); err != nil {
		s.logger.Error("failed to publish extra reset event", "error", err, "extra_id", id)
	}

	s.logger.Info("extra updated and reset",
		"extra_id", id,
		"user_id", principal.ID,
		"previous_status", previous)
	return e, nil
}

func (s *Service) DeleteExtra(ctx context.Context, principal *internal.User, id string) error {
	e, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !principal.IsManager() && e.UserID != principal.ID {
		s.logger.Warn("unauthorized delete of extra", "extra_id", id, "user_id", principal.ID)
		return internal.ErrUnauthorizedAccess
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete extra", "error", err, "extra_id", id)
		return err
	}

	s.logger.Info("extra deleted", "extra_id", id, "user_id", principal.ID)
	return nil
}

// ChangeStatus applies a manager decision. Approval publishes
// extra.approved so the receipt gets generated.
func (s *Service) ChangeStatus(ctx context.Context, principal *internal.User, id string, dto StatusDTO) (*Extra, error) {
	if !principal.IsManager() {
		s.logger.Warn("change status denied: not a manager", "extra_id", id, "user_id", principal.ID)
		return nil, internal.ErrUnauthorizedAccess
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !e.CanTransitionTo(dto.Status) {
		s.logger.Warn("invalid status transition",
			"extra_id", id,
			"current_status", e.Status,
			"requested_status", dto.Status)
		return nil, internal.ErrInvalidTransition
	}

	from := e.Status
	e.ApplyStatus(dto.Status, principal.ID, time.Now().UTC())
	if err := s.repo.UpdateStatus(ctx, ToDataModel(e), from); err != nil {
		s.logger.Error("failed to update extra status", "error", err, "extra_id", id, "status", dto.Status)
		return nil, err
	}

	s.logger.Info("extra status changed",
		"extra_id", id,
		"from", from,
		"to", e.Status,
		"manager_id", principal.ID)

	if e.Status == StatusAprovado {
		if err := s.publisher.Publish(ctx, events.NewExtraApprovedEvent(e.ID, principal.ID, e.Valor)); err != nil {
			s.logger.Error("failed to publish extra approved event", "error", err, "extra_id", id)
		}
	}
	return e, nil
}

// ListWithDetails joins display names. Non-managers only see their own.
func (s *Service) ListWithDetails(ctx context.Context, principal *internal.User, filter Filter) ([]*ExtraDetail, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if !principal.IsManager() {
		filter.UserID = principal.ID
	}

	rows, err := s.repo.ListWithDetails(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list extras with details", "error", err)
		return nil, err
	}

	out := make([]*ExtraDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, DetailFromDataModel(row))
	}
	return out, nil
}

func (s *Service) Totals(ctx context.Context) (int64, float64, error) {
	return s.repo.Totals(ctx)
}

func (s *Service) newExtra(principal *internal.User, employeeID, companyID, setor, vaga, data, entrada, saida string, valor float64) *Extra {
	now := time.Now().UTC()
	return &Extra{
		ID:          uuid.NewString(),
		UserID:      principal.ID,
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		DataEvento:  data,
		HoraEntrada: entrada,
		HoraSaida:   saida,
		Valor:       validation.RoundValor(valor),
		Setor:       setor,
		Vaga:        vaga,
		Status:      StatusPendente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Service) get(ctx context.Context, id string) (*Extra, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) list(ctx context.Context, userID string) ([]*Extra, error) {
	rows, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list extras", "error", err, "user_id", userID)
		return nil, err
	}
	out := make([]*Extra, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func merge(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
