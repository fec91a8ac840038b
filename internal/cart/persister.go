package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/jimlawless/whereami"
)

// FilePersister хранит корзину в JSON-файле.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load читает корзину; отсутствующий файл означает пустую корзину.
func (f *FilePersister) Load() ([]domain.CartItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return items, nil
}

// Save атомарно перезаписывает файл через временный файл и rename.
func (f *FilePersister) Save(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*.json")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := tmp.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
