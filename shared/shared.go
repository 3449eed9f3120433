package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"workforce/shared/cache"
	"workforce/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// AppendFilter adds a filter to group when value is not empty.
func AppendFilter(group *dto.FilterGroup, table, field, operator string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case *bool:
		if v == nil {
			return
		}

		value = *v
	}

	if group.Operator == "" {
		group.Operator = dto.FilterGroupOperatorAnd
	}

	group.Filters = append(group.Filters, dto.Filter{
		Field:    field,
		Value:    value,
		Operator: operator,
		Table:    table,
	})
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a stable key from list parameters and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter dto.FilterGroup `json:"filter"`
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key payload")

		return prefix
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches clears every key under prefix. Failures are only logged.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.Clear(ctx, prefix+"*"); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}

// VersionedPrefix scopes prefix to the current generation of namespace. It must be taken before
// the read it caches, so a result read ahead of a write lands on a retired generation.
func VersionedPrefix(ctx context.Context, c cache.RedisCache, namespace, prefix string) string {
	version, err := c.Version(ctx, namespace)
	if err != nil {
		log.Error().Err(err).Str("namespace", namespace).Msg("failed to read cache version")
	}

	return BuildCacheKey(prefix, "v"+strconv.FormatInt(version, 10))
}

// Invalidate retires the current generation of namespace, then drops entries under prefixes.
// Failures are only logged.
func Invalidate(ctx context.Context, c cache.RedisCache, namespace string, prefixes ...string) {
	if err := c.Bump(ctx, namespace); err != nil {
		log.Error().Err(err).Str("namespace", namespace).Msg("failed to bump cache version")
	}

	InvalidateCaches(ctx, c, prefixes...)
}

// IsUUID reports whether id can be compared against a UUID column.
func IsUUID(id string) bool {
	return uuid.Validate(id) == nil
}
