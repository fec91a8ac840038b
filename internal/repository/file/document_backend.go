package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/jimlawless/whereami"
)

// DocumentBackend хранит документ JSON-файлом в каталоге данных.
// Версия — sha256 содержимого файла.
type DocumentBackend struct {
	mu   sync.Mutex
	dir  string
	path string
}

// NewDocumentBackend создаёт бэкенд для документа name в каталоге dir.
// Двоеточия в имени заменяются на дефис: "settings:video" → settings-video.json.
func NewDocumentBackend(dir, name string) *DocumentBackend {
	fileName := strings.ReplaceAll(name, ":", "-") + ".json"

	return &DocumentBackend{
		dir:  dir,
		path: filepath.Join(dir, fileName),
	}
}

func (d *DocumentBackend) Load(_ context.Context) ([]byte, string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.read()
}

func (d *DocumentBackend) Store(_ context.Context, data []byte, expectedVersion string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, current, err := d.read()
	if err != nil {
		return err
	}

	if current != expectedVersion {
		return e.ErrVersionConflict
	}

	return d.write(data)
}

// Ping проверяет, что каталог данных существует или может быть создан.
func (d *DocumentBackend) Ping(_ context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (d *DocumentBackend) read() ([]byte, string, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]), nil
}

// write пишет во временный файл и переименовывает его, чтобы читатель не увидел половину документа.
func (d *DocumentBackend) write(data []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tmp, err := os.CreateTemp(d.dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
