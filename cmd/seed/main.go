// seed carga productos iniciales en el almacenamiento configurado (STORAGE_DRIVER)
// a partir de un CSV nombre,sku,qty,unitCost con cabecera.
//
// Uso: go run ./cmd/seed [--latin1] productos.csv
// Planillas exportadas desde Excel suelen venir en ISO-8859-1: usar --latin1.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/ledger"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	latin1 := pflag.Bool("latin1", false, "el CSV está codificado en ISO-8859-1")
	pflag.Parse()
	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [--latin1] productos.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	f, err := os.Open(pflag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	products, err := readProducts(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	kv, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer kv.Close()

	store := ledger.NewStore(kv)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar estoque")
	}
	for _, p := range products {
		idx, _, err := store.AddProduct(ctx, p)
		if err != nil {
			log.Fatal().Err(err).Str("product", p.Name).Msg("agregar producto")
		}
		log.Info().Int("index", idx).Str("product", p.Name).Int64("qty", p.Qty).Msg("producto cargado")
	}
	log.Info().Int("total", len(products)).Str("storage", cfg.Storage.Driver).Msg("seed completo")
}

// readProducts lee nombre,sku,qty,unitCost; la primera fila es cabecera. Cantidades y costos
// no numéricos quedan en 0, igual que en la API.
func readProducts(r io.Reader) ([]ledger.ProductInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []ledger.ProductInput
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 {
			continue
		}
		for len(rec) < 4 {
			rec = append(rec, "")
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		out = append(out, ledger.ProductInput{
			Name:     name,
			SKU:      strings.TrimSpace(rec[1]),
			Qty:      dto.ParseQty(rec[2]),
			UnitCost: dto.ParseMoney(rec[3]),
		})
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return postgres.NewKVStore(ctx, pool)
	case config.StorageMemory:
		return nil, errors.New("seed sobre STORAGE_DRIVER=memory no persiste nada")
	default:
		return kvstore.NewFileStore(afero.NewOsFs(), cfg.Storage.Dir)
	}
}
