// Copyright (c) 2026 Litho Press. All rights reserved.

package analytics

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/constants"
)

// CounterDelta is one variant's pending tally drained from Redis.
type CounterDelta struct {
	Name        string
	Variant     string
	Impressions int64
	Conversions int64
}

// Hash field prefixes inside one experiment's counter hash.
const (
	impressionField = "imp:"
	conversionField = "conv:"
)

// namesKey indexes every experiment that has live counters.
const namesKey = constants.RedisPrefixExperiment + "names"

// RedisCounterStore keeps the live A/B counters as one Redis hash per
// experiment, so a hit is a single HINCRBY regardless of variant count.
type RedisCounterStore struct {
	client *redis.Client
}

// NewCounterStore creates a new Redis-backed counter store.
func NewCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func counterKey(name string) string {
	return constants.RedisPrefixExperiment + "counters:" + name
}

// RecordImpression bumps the impression counter for one variant.
func (store *RedisCounterStore) RecordImpression(context context.Context, name, variant string) error {
	return store.bump(context, name, impressionField+variant)
}

// RecordConversion bumps the conversion counter for one variant.
func (store *RedisCounterStore) RecordConversion(context context.Context, name, variant string) error {
	return store.bump(context, name, conversionField+variant)
}

func (store *RedisCounterStore) bump(context context.Context, name, field string) error {
	pipe := store.client.TxPipeline()
	pipe.SAdd(context, namesKey, name)
	pipe.HIncrBy(context, counterKey(name), field, 1)

	if _, err := pipe.Exec(context); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Drain atomically claims and clears every experiment's pending
// counters. Each hash is renamed aside before reading so increments
// arriving mid-drain land in a fresh hash and survive to the next run.
func (store *RedisCounterStore) Drain(context context.Context) ([]CounterDelta, error) {
	names, err := store.client.SMembers(context, namesKey).Result()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	deltas := make([]CounterDelta, 0)
	for _, name := range names {
		key := counterKey(name)
		claimed := key + ":draining"

		if err := store.client.Rename(context, key, claimed).Err(); err != nil {
			if isRedisNil(err) {
				continue
			}
			return nil, apperr.Internal(err)
		}

		fields, err := store.client.HGetAll(context, claimed).Result()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if err := store.client.Del(context, claimed).Err(); err != nil {
			return nil, apperr.Internal(err)
		}

		deltas = append(deltas, parseCounterFields(name, fields)...)
	}

	return deltas, nil
}

// Live reads the pending counters without clearing them.
func (store *RedisCounterStore) Live(context context.Context) ([]CounterDelta, error) {
	names, err := store.client.SMembers(context, namesKey).Result()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	deltas := make([]CounterDelta, 0)
	for _, name := range names {
		fields, err := store.client.HGetAll(context, counterKey(name)).Result()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		deltas = append(deltas, parseCounterFields(name, fields)...)
	}

	return deltas, nil
}

// parseCounterFields folds one experiment's hash fields into per-variant deltas.
func parseCounterFields(name string, fields map[string]string) []CounterDelta {
	byVariant := make(map[string]*CounterDelta)

	variantOf := func(variant string) *CounterDelta {
		delta, ok := byVariant[variant]
		if !ok {
			delta = &CounterDelta{Name: name, Variant: variant}
			byVariant[variant] = delta
		}
		return delta
	}

	for field, raw := range fields {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(field, impressionField):
			variantOf(strings.TrimPrefix(field, impressionField)).Impressions += count
		case strings.HasPrefix(field, conversionField):
			variantOf(strings.TrimPrefix(field, conversionField)).Conversions += count
		}
	}

	deltas := make([]CounterDelta, 0, len(byVariant))
	for _, delta := range byVariant {
		deltas = append(deltas, *delta)
	}
	return deltas
}

func isRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
