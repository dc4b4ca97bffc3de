package ledger

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

type storeMetrics struct {
	movesAdded      metric.Int64Counter
	movesDeleted    metric.Int64Counter
	persistFailures metric.Int64Counter
}

// newStoreMetrics registra los contadores en el MeterProvider global (no-op si no se configuró telemetría).
func newStoreMetrics() storeMetrics {
	meter := otel.Meter(instrumentationName)
	added, _ := meter.Int64Counter("ledger.movements.added",
		metric.WithDescription("Movimientos registrados"))
	deleted, _ := meter.Int64Counter("ledger.movements.deleted",
		metric.WithDescription("Movimientos eliminados (con reversión de cantidad)"))
	failures, _ := meter.Int64Counter("ledger.persist.failures",
		metric.WithDescription("Commits que no pudieron escribirse en el almacenamiento"))
	return storeMetrics{movesAdded: added, movesDeleted: deleted, persistFailures: failures}
}

func movementAttrs(t entity.MovementType) metric.AddOption {
	return metric.WithAttributes(attribute.String("movement.type", string(t)))
}
