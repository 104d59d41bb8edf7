package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each table in a redis hash with a single field holding the
// JSON document. The hash keys are namespaced under a prefix so several
// experiments can share one instance.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = &RedisStore{}

const redisField = "table"

func NewRedisStore(addr, prefix string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		prefix: prefix,
	}
}

func (r *RedisStore) key(name string) string {
	return fmt.Sprintf("%s:%s", r.prefix, name)
}

func (r *RedisStore) Save(ctx context.Context, name string, table json.Marshaler) error {
	bs, err := table.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling table %s: %w", name, err)
	}
	return r.client.HSet(ctx, r.key(name), redisField, string(bs)).Err()
}

func (r *RedisStore) Load(ctx context.Context, name string, table json.Unmarshaler) error {
	fields, err := r.client.HGetAll(ctx, r.key(name)).Result()
	if err != nil {
		return fmt.Errorf("reading table %s: %w", name, err)
	}
	doc, ok := fields[redisField]
	if !ok {
		return fmt.Errorf("table %s not found", name)
	}
	return table.UnmarshalJSON([]byte(doc))
}

func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	keys, err := r.client.Keys(ctx, r.prefix+":*").Result()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k[len(r.prefix)+1:])
	}
	sort.Strings(names)
	return names, nil
}

// Ping checks the connection, for fail-fast at startup
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
