package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de validación (NotFound, InsufficientStock, InvalidInput) abortan
// la operación completa sin escrituras parciales. ConcurrencyConflict es
// reintentable por el caller; StoreUnavailable nunca se reintenta en este motor.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrStockNotFound       = errors.New("stock no encontrado")
	ErrOrderNotFound       = errors.New("pedido no encontrado")
	ErrBatchNotFound       = errors.New("lote no encontrado")
	ErrInvoiceNotFound     = errors.New("factura no encontrada")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
	ErrStoreUnavailable    = errors.New("almacenamiento no disponible")
	ErrBatchImmutable      = errors.New("lote en estado terminal, no admite más checkpoints")
)
