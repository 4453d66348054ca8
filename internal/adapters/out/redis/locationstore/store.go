// Package locationstore keeps the latest courier position per order in a
// Redis hash. Writes go through a Lua script so an older sample can never
// replace a newer one, whatever order concurrent reports arrive in.
package locationstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 2 * time.Hour

var _ ports.LocationStore = (*RedisLocationStore)(nil)

// KEYS[1] sample hash
// ARGV captured_at (unix micros), lat, lng, courier_id, ttl millis
var saveScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'captured_at')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'captured_at', ARGV[1], 'lat', ARGV[2], 'lng', ARGV[3], 'courier_id', ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

type RedisLocationStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisLocationStore keeps samples for ttl after the last accepted write.
func NewRedisLocationStore(client redis.Cmdable, ttl time.Duration) *RedisLocationStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocationStore{client: client, ttl: ttl}
}

func (s *RedisLocationStore) Save(ctx context.Context, sample tracking.Sample) (bool, error) {
	loc := sample.Location()

	kept, err := saveScript.Run(ctx, s.client, []string{key(sample.OrderID())},
		sample.CapturedAt().UnixMicro(),
		strconv.FormatFloat(loc.Lat(), 'f', -1, 64),
		strconv.FormatFloat(loc.Lng(), 'f', -1, 64),
		sample.CourierID(),
		s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis save location failed: %w", err)
	}
	return kept == 1, nil
}

func (s *RedisLocationStore) Get(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error) {
	fields, err := s.client.HGetAll(ctx, key(orderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get location failed: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	micros, err := strconv.ParseInt(fields["captured_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("stored captured_at is corrupt: %w", err)
	}
	lat, err := strconv.ParseFloat(fields["lat"], 64)
	if err != nil {
		return nil, fmt.Errorf("stored lat is corrupt: %w", err)
	}
	lng, err := strconv.ParseFloat(fields["lng"], 64)
	if err != nil {
		return nil, fmt.Errorf("stored lng is corrupt: %w", err)
	}

	location, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return nil, err
	}
	sample, err := tracking.NewSample(orderID, fields["courier_id"], location, time.UnixMicro(micros).UTC())
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (s *RedisLocationStore) Delete(ctx context.Context, orderID kernel.UUID) error {
	if err := s.client.Del(ctx, key(orderID)).Err(); err != nil {
		return fmt.Errorf("redis delete location failed: %w", err)
	}
	return nil
}

func key(id kernel.UUID) string {
	return "order:location:" + id.String()
}
