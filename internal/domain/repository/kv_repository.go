package repository

import "context"

// Claves fijas del almacenamiento durable.
const (
	KeyProducts  = "estoque_products_v1"
	KeyMovements = "estoque_moves_v1"
)

// Entry par clave/valor (valor = blob JSON) a escribir en el almacenamiento durable.
type Entry struct {
	Key   string
	Value []byte
}

// KeyValueStore define el puerto de persistencia clave-valor (DIP).
// Get devuelve found=false (sin error) si la clave no existe.
// Put escribe todas las entradas en orden; los backends que lo soportan lo hacen de forma atómica.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, entries ...Entry) error
	Close() error
}
