package document

import (
	"context"
	"strconv"
	"sync"

	"github.com/DRSN-tech/autovarka/pkg/e"
)

// MemoryBackend хранит документ в памяти процесса. Используется в тестах
// и как хранилище по умолчанию для настроек без внешнего бэкенда.
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	version int64
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.version == 0 {
		return nil, "", nil
	}

	data := make([]byte, len(m.data))
	copy(data, m.data)

	return data, strconv.FormatInt(m.version, 10), nil
}

func (m *MemoryBackend) Store(_ context.Context, data []byte, expectedVersion string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := ""
	if m.version > 0 {
		current = strconv.FormatInt(m.version, 10)
	}
	if current != expectedVersion {
		return e.ErrVersionConflict
	}

	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.version++

	return nil
}

func (m *MemoryBackend) Ping(context.Context) error {
	return nil
}
