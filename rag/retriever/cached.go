package retriever

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallnest/researchflow/log"
	"github.com/smallnest/researchflow/rag"
)

// CachedRetriever is a read-through Redis cache around another retriever.
// Results are cached per (query, topK) pair. Cache failures are logged and
// fall through to the inner retriever, so Redis being down never breaks
// retrieval.
type CachedRetriever struct {
	inner  rag.Retriever
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger log.Logger
}

// CacheOptions configuration for the Redis cache
type CacheOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "researchflow:retrieval:"
	TTL      time.Duration // Expiration for cached results, default 10 minutes
	Logger   log.Logger
}

// NewCachedRetriever creates a Redis-backed cache around inner.
func NewCachedRetriever(inner rag.Retriever, opts CacheOptions) *CachedRetriever {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewCachedRetrieverWithClient(inner, client, opts)
}

// NewCachedRetrieverWithClient creates a cache around inner using an
// existing Redis client.
func NewCachedRetrieverWithClient(inner rag.Retriever, client *redis.Client, opts CacheOptions) *CachedRetriever {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "researchflow:retrieval:"
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	return &CachedRetriever{
		inner:  inner,
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedRetriever) cacheKey(query string, topK int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s%x:%d", r.prefix, sum[:8], topK)
}

// Retrieve returns cached results when available, otherwise delegates to
// the inner retriever and stores the outcome.
func (r *CachedRetriever) Retrieve(ctx context.Context, query string, topK int) ([]rag.SearchResult, error) {
	key := r.cacheKey(query, topK)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached []rag.SearchResult
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			r.logger.Debug("retrieval cache hit: %s", key)
			return cached, nil
		}
		r.logger.Warn("retrieval cache entry corrupt, refetching: %s", key)
	} else if err != redis.Nil {
		r.logger.Warn("retrieval cache unavailable: %v", err)
	}

	results, err := r.inner.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(results); jsonErr == nil {
		if setErr := r.client.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("failed to cache retrieval results: %v", setErr)
		}
	}

	return results, nil
}

var _ rag.Retriever = (*CachedRetriever)(nil)
