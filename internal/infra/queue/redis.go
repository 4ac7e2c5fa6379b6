package queue

import (
	"context"

	"slot-reservation/internal/infra"

	"github.com/redis/go-redis/v9"
)

const (
	// MainQueueKey holds pending allocation requests in FIFO order.
	MainQueueKey = "reservation:queue"
	// DeadLetterKey holds items that exhausted their retry budget. The list
	// is append-only; replay is an operator action.
	DeadLetterKey = "reservation:dlq"
)

// RedisFIFO is a durable list with head-pop and tail-push. One instance per
// key; the main queue and the dead-letter list are two instances.
type RedisFIFO struct {
	rdb *redis.Client
	key string
}

func NewRedisFIFO(rdb *redis.Client, key string) *RedisFIFO {
	return &RedisFIFO{rdb: rdb, key: key}
}

func (f *RedisFIFO) PushTail(ctx context.Context, payload []byte) error {
	if err := f.rdb.RPush(ctx, f.key, payload).Err(); err != nil {
		return infra.WrapRepoErr("failed to push queue item", err, infra.KindUnavailable)
	}
	return nil
}

func (f *RedisFIFO) PopHead(ctx context.Context) ([]byte, error) {
	payload, err := f.rdb.LPop(ctx, f.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to pop queue item", err, infra.KindUnavailable)
	}
	return payload, nil
}

func (f *RedisFIFO) Len(ctx context.Context) (int64, error) {
	n, err := f.rdb.LLen(ctx, f.key).Result()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to read queue length", err, infra.KindUnavailable)
	}
	return n, nil
}
