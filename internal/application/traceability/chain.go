// Package traceability implementa la cadena de custodia de lotes de cosecha:
// una cadena append-only de checkpoints de ubicación y condición.
package traceability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

// ChainUseCase crea lotes, anexa checkpoints y produce reportes de trayecto.
//
// Invariantes: la cadena de checkpoints nunca se edita ni se trunca, solo crece;
// CurrentLocation y Status del lote siempre reflejan el último checkpoint; un
// lote en estado terminal (delivered/rejected) es inmutable.
type ChainUseCase struct {
	batches repository.BatchRepository
	log     *logger.Logger
}

// NewChainUseCase construye el caso de uso.
func NewChainUseCase(batches repository.BatchRepository, log *logger.Logger) *ChainUseCase {
	return &ChainUseCase{batches: batches, log: log}
}

// CreateBatch da de alta el lote sembrando la cadena con un checkpoint en el
// origen, en estado in_transit.
func (uc *ChainUseCase) CreateBatch(ctx context.Context, in dto.CreateBatchRequest) (*entity.Batch, error) {
	if in.ProductType == "" || in.Quantity <= 0 || in.Origin.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UnixMilli()
	seed := entity.Checkpoint{
		Location:  in.Origin.Location,
		Timestamp: now,
		Status:    entity.BatchStatusInTransit,
		Notes:     "checkpoint de origen",
	}
	b := &entity.Batch{
		ID:              uuid.New().String(),
		BatchNumber:     newBatchNumber(),
		ProductType:     in.ProductType,
		Quantity:        in.Quantity,
		Origin:          entity.BatchParty{Name: in.Origin.Name, Location: in.Origin.Location},
		Destination:     entity.BatchParty{Name: in.Destination.Name, Location: in.Destination.Location},
		Quality:         in.Quality,
		Certifications:  in.Certifications,
		Status:          entity.BatchStatusInTransit,
		CurrentLocation: in.Origin.Location,
		Checkpoints:     []entity.Checkpoint{seed},
		CreatedAt:       now,
	}
	if err := uc.batches.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("insertar lote: %w", err)
	}
	uc.log.Info().Str("batch_id", b.ID).Str("batch_number", b.BatchNumber).
		Str("origin", b.Origin.Location).Msg("lote creado")
	return b, nil
}

// AddCheckpoint anexa un checkpoint a la cadena (nunca reemplaza) y refleja
// ubicación y estado del lote.
//
// El timestamp del checkpoint se acepta sin validar monotonía contra los
// anteriores: las entradas retroactivas corregidas son legítimas en campo.
func (uc *ChainUseCase) AddCheckpoint(ctx context.Context, batchID string, in dto.AddCheckpointRequest) (*entity.Checkpoint, error) {
	if in.Location == "" || !entity.ValidBatchStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.batches.Get(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("leer lote %s: %w", batchID, err)
	}
	if b == nil {
		return nil, fmt.Errorf("lote %s: %w", batchID, domain.ErrBatchNotFound)
	}
	if b.Terminal() {
		return nil, fmt.Errorf("lote %s (%s): %w", batchID, b.Status, domain.ErrBatchImmutable)
	}

	ts := time.Now().UnixMilli()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	cp := entity.Checkpoint{
		Location:    in.Location,
		Timestamp:   ts,
		Temperature: in.Temperature,
		Status:      in.Status,
		Notes:       in.Notes,
	}
	ok, err := uc.batches.AppendCheckpoint(ctx, batchID, cp)
	if err != nil {
		return nil, fmt.Errorf("anexar checkpoint al lote %s: %w", batchID, err)
	}
	if !ok {
		return nil, fmt.Errorf("lote %s: %w", batchID, domain.ErrBatchNotFound)
	}
	uc.log.Info().Str("batch_id", batchID).Str("location", cp.Location).
		Str("status", cp.Status).Msg("checkpoint anexado")
	return &cp, nil
}

// Get devuelve el lote por id.
func (uc *ChainUseCase) Get(ctx context.Context, batchID string) (*entity.Batch, error) {
	b, err := uc.batches.Get(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("leer lote %s: %w", batchID, err)
	}
	if b == nil {
		return nil, fmt.Errorf("lote %s: %w", batchID, domain.ErrBatchNotFound)
	}
	return b, nil
}

// List devuelve todos los lotes.
func (uc *ChainUseCase) List(ctx context.Context) ([]entity.Batch, error) {
	return uc.batches.List(ctx)
}

// Report construye el reporte de trayecto de solo lectura. Nunca muta: los
// timestamps epoch ms se renderizan a ISO-8601 únicamente en esta frontera.
func (uc *ChainUseCase) Report(ctx context.Context, batchID string) (*dto.BatchReport, error) {
	b, err := uc.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}
	journey := make([]dto.JourneyEntry, 0, len(b.Checkpoints))
	for _, cp := range b.Checkpoints {
		journey = append(journey, dto.JourneyEntry{
			Location:    cp.Location,
			Timestamp:   time.UnixMilli(cp.Timestamp).UTC().Format(time.RFC3339),
			Temperature: cp.Temperature,
			Status:      cp.Status,
			Notes:       cp.Notes,
		})
	}
	return &dto.BatchReport{
		BatchNumber:     b.BatchNumber,
		ProductType:     b.ProductType,
		Quantity:        b.Quantity,
		OriginName:      b.Origin.Name,
		DestinationName: b.Destination.Name,
		Quality:         b.Quality,
		Certifications:  b.Certifications,
		Status:          b.Status,
		CurrentLocation: b.CurrentLocation,
		Journey:         journey,
	}, nil
}

// newBatchNumber genera un consecutivo legible, ej. LOT-20260828-9B31D0.
func newBatchNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("LOT-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
