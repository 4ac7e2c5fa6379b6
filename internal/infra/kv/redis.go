package kv

import (
	"context"
	"time"

	"slot-reservation/internal/infra"

	"github.com/redis/go-redis/v9"
)

const (
	statusKeyPrefix = "reservation:status:"
	guardSetKey     = "reservation:emails:queued"
	sweepScanBatch  = 100
	ttlNotSet       = time.Duration(-1)
	ttlKeyMissing   = time.Duration(-2)
)

// Store is a TTL-backed key→string map with a prefix per concern.
type Store struct {
	rdb    *redis.Client
	prefix string
}

func NewStatusStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, prefix: statusKeyPrefix}
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to write status key", err, infra.KindUnavailable)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, infra.WrapRepoErr("failed to read status key", err, infra.KindUnavailable)
	}
	return value, true, nil
}

// ApplyMissingTTL scans the prefix and attaches the given TTL to any key
// that has none. Covers keys written before TTL enforcement existed.
func (s *Store) ApplyMissingTTL(ctx context.Context, ttl time.Duration) (int, error) {
	applied := 0
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", sweepScanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		remaining, err := s.rdb.TTL(ctx, key).Result()
		if err != nil {
			return applied, infra.WrapRepoErr("failed to read key TTL", err, infra.KindUnavailable)
		}
		if remaining == ttlKeyMissing {
			continue // expired between scan and TTL read
		}
		if remaining == ttlNotSet {
			if err := s.rdb.Expire(ctx, key, ttl).Err(); err != nil {
				return applied, infra.WrapRepoErr("failed to set key TTL", err, infra.KindUnavailable)
			}
			applied++
		}
	}
	if err := iter.Err(); err != nil {
		return applied, infra.WrapRepoErr("failed to scan status keys", err, infra.KindUnavailable)
	}
	return applied, nil
}

// MemberSet is the duplicate-guard set of requester identities with an
// in-flight queued request.
type MemberSet struct {
	rdb *redis.Client
	key string
}

func NewGuardSet(rdb *redis.Client) *MemberSet {
	return &MemberSet{rdb: rdb, key: guardSetKey}
}

func (m *MemberSet) Add(ctx context.Context, member string) error {
	if err := m.rdb.SAdd(ctx, m.key, member).Err(); err != nil {
		return infra.WrapRepoErr("failed to add guard member", err, infra.KindUnavailable)
	}
	return nil
}

func (m *MemberSet) Remove(ctx context.Context, member string) error {
	if err := m.rdb.SRem(ctx, m.key, member).Err(); err != nil {
		return infra.WrapRepoErr("failed to remove guard member", err, infra.KindUnavailable)
	}
	return nil
}

func (m *MemberSet) Contains(ctx context.Context, member string) (bool, error) {
	found, err := m.rdb.SIsMember(ctx, m.key, member).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to check guard member", err, infra.KindUnavailable)
	}
	return found, nil
}
