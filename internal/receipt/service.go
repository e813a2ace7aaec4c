package receipt

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	receiptDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/receipt"
	"github.com/google/uuid"
)

const (
	statusAprovado = "aprovado"
	statusCiente   = "ciente"
)

type RepositoryAPI interface {
	// LoadSource returns ErrExtraNotFound when the extra does not exist.
	LoadSource(ctx context.Context, extraID string) (*receiptDatamodel.Source, error)
	// Upsert returns ErrReceiptNotReady when the extra is no longer eligible.
	Upsert(ctx context.Context, r *receiptDatamodel.Receipt) error
	GetByExtraID(ctx context.Context, extraID string) (*receiptDatamodel.Receipt, error)
	Delete(ctx context.Context, extraID string) error
	// ListMissing returns eligible extras that have no receipt yet.
	ListMissing(ctx context.Context) ([]string, error)
}

type Service struct {
	repo     RepositoryAPI
	renderer Renderer
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, renderer Renderer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

// Generate renders and stores the receipt of an approved or acknowledged
// extra, replacing any previous one.
func (s *Service) Generate(ctx context.Context, extraID string) (*Receipt, error) {
	src, err := s.repo.LoadSource(ctx, extraID)
	if err != nil {
		return nil, err
	}
	if src.Status != statusAprovado && src.Status != statusCiente {
		s.logger.Warn("receipt requested for ineligible extra", "extra_id", extraID, "status", src.Status)
		return nil, internal.ErrReceiptNotReady
	}

	pdf, err := s.renderer.Render(src)
	if err != nil {
		s.logger.Error("failed to render receipt", "error", err, "extra_id", extraID)
		return nil, internal.NewInternalError("failed to render receipt", err)
	}

	r := &Receipt{
		ID:        uuid.NewString(),
		ExtraID:   extraID,
		PDF:       pdf,
		Total:     src.Valor,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, ToDataModel(r)); err != nil {
		if errors.Is(err, internal.ErrReceiptNotReady) {
			s.logger.Warn("extra changed while its receipt was rendered", "extra_id", extraID)
			return nil, err
		}
		s.logger.Error("failed to store receipt", "error", err, "extra_id", extraID)
		return nil, err
	}

	s.logger.Info("receipt generated",
		"extra_id", extraID,
		"total", r.Total,
		"size_bytes", len(pdf))
	return r, nil
}

// Get returns the stored receipt, generating it on demand for eligible
// extras. Anything else reads as not found.
func (s *Service) Get(ctx context.Context, extraID string) (*Receipt, error) {
	row, err := s.repo.GetByExtraID(ctx, extraID)
	if err == nil {
		return FromDataModel(row), nil
	}
	if !errors.Is(err, internal.ErrReceiptNotFound) {
		s.logger.Error("failed to load receipt", "error", err, "extra_id", extraID)
		return nil, err
	}

	r, err := s.Generate(ctx, extraID)
	if errors.Is(err, internal.ErrReceiptNotReady) || errors.Is(err, internal.ErrExtraNotFound) {
		return nil, internal.ErrReceiptNotFound
	}
	return r, err
}

func (s *Service) Delete(ctx context.Context, extraID string) error {
	if err := s.repo.Delete(ctx, extraID); err != nil {
		if !errors.Is(err, internal.ErrReceiptNotFound) {
			s.logger.Error("failed to delete receipt", "error", err, "extra_id", extraID)
		}
		return err
	}
	s.logger.Info("receipt deleted", "extra_id", extraID)
	return nil
}

// Invalidate drops the receipt of an extra that went back to review. A
// missing receipt is not an error.
func (s *Service) Invalidate(ctx context.Context, extraID string) error {
	err := s.Delete(ctx, extraID)
	if errors.Is(err, internal.ErrReceiptNotFound) {
		return nil
	}
	return err
}

func (s *Service) ListMissing(ctx context.Context) ([]string, error) {
	return s.repo.ListMissing(ctx)
}
