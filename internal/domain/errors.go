package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorage           = errors.New("fallo de almacenamiento")
)

// InsufficientStockError lleva las cifras de disponibilidad para que el caller
// construya un mensaje preciso. Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	Available int // stock elegible total del medicamento
	Requested int // cantidad solicitada
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// StorageError envuelve un fallo de infraestructura (lock, update, insert).
// La unidad de trabajo completa se revierte; el caller puede reintentar la
// deducción entera. Compatible con errors.Is(err, ErrStorage) y con errors.Is
// sobre el error original.
type StorageError struct {
	Op  string // operación que falló, ej: "list eligible batches"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
