// Package kvstore implementa el puerto repository.KeyValueStore sobre archivos y memoria.
// FileStore guarda un archivo <clave>.json por clave.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*FileStore)(nil)

// FileStore guarda cada clave en dir/<clave>.json sobre un afero.Fs.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore crea el directorio si no existe. Pasar afero.NewOsFs() en producción
// o afero.NewMemMapFs() en tests.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if ok, _ := afero.DirExists(fs, dir); !ok {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
		}
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get lee dir/<key>.json; found=false si el archivo no existe.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", key, err)
	}
	return raw, true, nil
}

// Put escribe cada entrada en un archivo temporal y lo renombra, de modo que un archivo
// nunca queda a medio escribir. Entre claves distintas no hay atomicidad.
func (s *FileStore) Put(ctx context.Context, entries ...repository.Entry) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		final := s.path(e.Key)
		tmp := final + ".tmp"
		if err := afero.WriteFile(s.fs, tmp, e.Value, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", e.Key, err)
		}
		if err := s.fs.Rename(tmp, final); err != nil {
			_ = s.fs.Remove(tmp)
			return fmt.Errorf("renombrar %s: %w", e.Key, err)
		}
	}
	return nil
}

// Close no hace nada: no hay descriptores abiertos entre llamadas.
func (s *FileStore) Close() error { return nil }
