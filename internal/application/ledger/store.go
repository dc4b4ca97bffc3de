// Package ledger contiene el Ledger Store: dueño de las colecciones de productos y
// movimientos, aplica la regla de consistencia producto/movimiento y persiste el
// estado en el almacenamiento clave-valor después de cada mutación.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/estoque-api/internal/application/ledger"

// ProductInput entrada para dar de alta un producto. Qty y UnitCost ya vienen coercionados
// (valores no numéricos llegan como 0).
type ProductInput struct {
	Name     string
	SKU      string
	Qty      int64
	UnitCost decimal.Decimal
}

// MovementInput entrada para registrar un movimiento sobre el producto llamado Product.
type MovementInput struct {
	Product     string
	Type        entity.MovementType
	Qty         int64
	UnitCost    decimal.Decimal
	Description string
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado para fechar movimientos.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store mantiene en memoria la lista de productos y la secuencia de movimientos
// (más reciente primero). Cada acción corre completa bajo mu, incluido su commit.
type Store struct {
	mu       sync.Mutex
	kv       repository.KeyValueStore
	now      func() time.Time
	tracer   trace.Tracer
	metrics  storeMetrics
	products []entity.Product
	moves    []entity.Movement
}

// NewStore construye el Store vacío; llamar Load antes de atender acciones.
func NewStore(kv repository.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		now:      time.Now,
		tracer:   otel.Tracer(instrumentationName),
		metrics:  newStoreMetrics(),
		products: []entity.Product{},
		moves:    []entity.Movement{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load lee ambas colecciones del almacenamiento. Una clave ausente equivale a colección vacía;
// un blob corrupto es un error.
func (s *Store) Load(ctx context.Context) (err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Load")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := loadCollection[entity.Product](ctx, s.kv, repository.KeyProducts)
	if err != nil {
		return err
	}
	moves, err := loadCollection[entity.Movement](ctx, s.kv, repository.KeyMovements)
	if err != nil {
		return err
	}
	s.products = products
	s.moves = moves
	span.SetAttributes(
		attribute.Int("ledger.products", len(products)),
		attribute.Int("ledger.movements", len(moves)),
	)
	return nil
}

// Save escribe ambas colecciones (paso explícito de cierre).
func (s *Store) Save(ctx context.Context) (err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Save")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, repository.KeyMovements, repository.KeyProducts)
}

// AddProduct agrega un producto al final de la lista. No valida nombres duplicados.
// Devuelve el índice asignado.
func (s *Store) AddProduct(ctx context.Context, in ProductInput) (idx int, p entity.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.AddProduct", trace.WithAttributes(
		attribute.String("product.name", in.Name),
	))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	p = entity.Product{Name: in.Name, SKU: in.SKU, Qty: in.Qty, UnitCost: in.UnitCost}
	s.products = append(s.products, p)
	idx = len(s.products) - 1
	return idx, p, s.commit(ctx, repository.KeyProducts)
}

// EditProduct sobrescribe nombre y cantidad del producto en index.
// Renombrar no actualiza los movimientos que referencian el nombre anterior.
func (s *Store) EditProduct(ctx context.Context, index int, name string, qty int64) (p entity.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.EditProduct", trace.WithAttributes(
		attribute.Int("product.index", index),
	))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.products) {
		return entity.Product{}, fmt.Errorf("producto %d: %w", index, domain.ErrIndexOutOfRange)
	}
	s.products[index].Name = name
	s.products[index].Qty = qty
	return s.products[index], s.commit(ctx, repository.KeyProducts)
}

// AddMovement registra una entrada o salida sobre el producto cuyo nombre coincide,
// actualiza su cantidad y coloca el movimiento al inicio de la secuencia.
func (s *Store) AddMovement(ctx context.Context, in MovementInput) (m entity.Movement, err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.AddMovement", trace.WithAttributes(
		attribute.String("product.name", in.Product),
		attribute.String("movement.type", string(in.Type)),
		attribute.Int64("movement.qty", in.Qty),
	))
	defer func() { endSpan(span, err) }()

	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSaida {
		return entity.Movement{}, fmt.Errorf("tipo %q: %w", in.Type, domain.ErrInvalidInput)
	}
	if in.Qty < 0 {
		return entity.Movement{}, fmt.Errorf("cantidad %d: %w", in.Qty, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.findProduct(in.Product)
	if pi < 0 {
		return entity.Movement{}, fmt.Errorf("producto %q: %w", in.Product, domain.ErrNotFound)
	}
	prod := &s.products[pi]
	finalQty, err := inventory.FinalQty(prod.Qty, in.Type, in.Qty)
	if err != nil {
		return entity.Movement{}, fmt.Errorf("producto %q: %w", prod.Name, err)
	}
	prod.Qty = finalQty

	m = entity.Movement{
		Datetime:    s.now().UTC(),
		Product:     prod.Name,
		Entity:      "",
		Type:        in.Type,
		Qty:         in.Qty,
		FinalQty:    finalQty,
		UnitCost:    in.UnitCost,
		TotalCost:   in.UnitCost.Mul(decimal.NewFromInt(in.Qty)),
		Description: in.Description,
	}
	s.moves = slices.Insert(s.moves, 0, m)
	s.metrics.movesAdded.Add(ctx, 1, movementAttrs(m.Type))
	return m, s.commit(ctx, repository.KeyMovements, repository.KeyProducts)
}

// DeleteMovement elimina el movimiento en index y revierte su efecto sobre la cantidad del
// producto que hoy lleve ese nombre (si ya no existe, solo se elimina el movimiento).
// No se revalida la secuencia cuando se borra fuera de orden cronológico.
func (s *Store) DeleteMovement(ctx context.Context, index int) (m entity.Movement, err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.DeleteMovement", trace.WithAttributes(
		attribute.Int("movement.index", index),
	))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.moves) {
		return entity.Movement{}, fmt.Errorf("movimiento %d: %w", index, domain.ErrIndexOutOfRange)
	}
	m = s.moves[index]
	if pi := s.findProduct(m.Product); pi >= 0 {
		qty, err := inventory.ReverseQty(s.products[pi].Qty, m.Type, m.Qty)
		if err != nil {
			return entity.Movement{}, fmt.Errorf("revertir movimiento %d: %w", index, err)
		}
		s.products[pi].Qty = qty
	} else {
		span.AddEvent("producto ausente, cantidad no revertida")
	}
	s.moves = slices.Delete(s.moves, index, index+1)
	s.metrics.movesDeleted.Add(ctx, 1, movementAttrs(m.Type))
	return m, s.commit(ctx, repository.KeyMovements, repository.KeyProducts)
}

// Products devuelve una copia de la lista de productos.
func (s *Store) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Movements devuelve una copia de la secuencia de movimientos (más reciente primero).
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.moves)
}

// Snapshot devuelve ambas colecciones leídas bajo el mismo lock.
func (s *Store) Snapshot() ([]entity.Product, []entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products), slices.Clone(s.moves)
}

// findProduct devuelve el índice del primer producto con ese nombre, o -1.
func (s *Store) findProduct(name string) int {
	return slices.IndexFunc(s.products, func(p entity.Product) bool { return p.Name == name })
}

// commit serializa las colecciones indicadas y las escribe en una sola llamada Put.
// La memoria ya fue mutada: si la escritura falla, memoria y almacenamiento quedan divergentes
// hasta la próxima escritura exitosa.
func (s *Store) commit(ctx context.Context, keys ...string) error {
	entries := make([]repository.Entry, 0, len(keys))
	for _, key := range keys {
		var v any
		switch key {
		case repository.KeyProducts:
			v = s.products
		case repository.KeyMovements:
			v = s.moves
		default:
			return fmt.Errorf("%w: clave desconocida %q", domain.ErrPersist, key)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			s.metrics.persistFailures.Add(ctx, 1)
			return fmt.Errorf("%w: serializar %s: %w", domain.ErrPersist, key, err)
		}
		entries = append(entries, repository.Entry{Key: key, Value: raw})
	}
	if err := s.kv.Put(ctx, entries...); err != nil {
		s.metrics.persistFailures.Add(ctx, 1)
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	return nil
}

func loadCollection[T any](ctx context.Context, kv repository.KeyValueStore, key string) ([]T, error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
