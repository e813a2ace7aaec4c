package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
	"github.com/frahmantamala/sistema-extras/internal/extra"
)

type ExtraSource interface {
	ListWithDetails(ctx context.Context, principal *internal.User, filter extra.Filter) ([]*extra.ExtraDetail, error)
	Totals(ctx context.Context) (int64, float64, error)
}

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	extras    ExtraSource
	employees Counter
	companies Counter
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(extras ExtraSource, employees, companies Counter, logger *slog.Logger) *Service {
	return &Service{
		extras:    extras,
		employees: employees,
		companies: companies,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Summary(ctx context.Context, principal *internal.User, filter extra.Filter) (*Summary, error) {
	rows, err := s.extras.ListWithDetails(ctx, principal, filter)
	if err != nil {
		return nil, err
	}

	users := make(map[string]struct{})
	sectors := make(map[string]struct{})
	out := &Summary{TotalExtras: len(rows)}
	for _, r := range rows {
		out.TotalValue += r.Valor
		users[r.UserID] = struct{}{}
		if r.Setor != "" {
			sectors[r.Setor] = struct{}{}
		}
	}
	out.TotalValue = validation.RoundValor(out.TotalValue)
	out.UniqueUsers = len(users)
	out.UniqueSectors = len(sectors)
	return out, nil
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	count, total, err := s.extras.Totals(ctx)
	if err != nil {
		s.logger.Error("failed to load extra totals", "error", err)
		return nil, err
	}
	employees, err := s.employees.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, err
	}
	companies, err := s.companies.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count companies", "error", err)
		return nil, err
	}
	return &DashboardStats{
		TotalExtras:    count,
		TotalValue:     validation.RoundValor(total),
		EmployeesCount: employees,
		CompaniesCount: companies,
	}, nil
}

// Export renders the filtered extras as an xlsx workbook of the given kind.
func (s *Service) Export(ctx context.Context, principal *internal.User, filter extra.Filter, kind string) (*Export, error) {
	if kind == "" {
		kind = KindSummary
	}
	if !ValidKind(kind) {
		return nil, internal.ErrInvalidReportKind
	}

	rows, err := s.extras.ListWithDetails(ctx, principal, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrNoReportData
	}

	content, err := writeWorkbook(kind, rows)
	if err != nil {
		s.logger.Error("failed to build report workbook", "error", err, "kind", kind)
		return nil, internal.NewInternalError("failed to build report", err)
	}

	filename := fmt.Sprintf("relatorio_%s_%s.xlsx", fileNames[kind], s.now().Format("2006-01-02"))
	s.logger.Info("report exported",
		"kind", kind,
		"rows", len(rows),
		"user_id", principal.ID)
	return &Export{Filename: filename, Content: content}, nil
}
