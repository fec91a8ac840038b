package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/autovarka/pkg/clients"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// DocumentBackend хранит документ двумя ключами: тело и счётчик версии.
// Запись выполняется в MULTI под WATCH ключа версии.
type DocumentBackend struct {
	client     *clients.RedisClient
	dataKey    string
	versionKey string
}

func NewDocumentBackend(client *clients.RedisClient, prefix, name string) *DocumentBackend {
	return &DocumentBackend{
		client:     client,
		dataKey:    prefix + "doc:" + name,
		versionKey: prefix + "doc:" + name + ":version",
	}
}

func (d *DocumentBackend) Load(ctx context.Context) ([]byte, string, error) {
	values, err := d.client.Client.MGet(ctx, d.dataKey, d.versionKey).Result()
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := redisValueToBytes(values[0])
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	version, err := redisValueToBytes(values[1])
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	return data, string(version), nil
}

func (d *DocumentBackend) Store(ctx context.Context, data []byte, expectedVersion string) error {
	txf := func(tx *r.Tx) error {
		current, err := tx.Get(ctx, d.versionKey).Result()
		if err != nil && !errors.Is(err, r.Nil) {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		if current != expectedVersion {
			return e.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe r.Pipeliner) error {
			pipe.Set(ctx, d.dataKey, data, 0)
			pipe.Incr(ctx, d.versionKey)
			return nil
		})

		return err
	}

	err := d.client.Client.Watch(ctx, txf, d.versionKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, r.TxFailedErr):
		return e.ErrVersionConflict
	case errors.Is(err, e.ErrVersionConflict):
		return err
	default:
		return e.Wrap(whereami.WhereAmI(), err)
	}
}

func (d *DocumentBackend) Ping(ctx context.Context) error {
	return d.client.Ping(ctx)
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, отсутствующий ключ даёт nil.
func redisValueToBytes(val interface{}) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected Redis value type: %T", val)
	}
}
