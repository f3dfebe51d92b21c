package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/resume"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "resume-matcher:parsed:"

// ResumeCache stores parsed resumes keyed by blob name and modification time,
// so a re-uploaded file is parsed again. A nil *ResumeCache is a disabled cache.
type ResumeCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewResumeCache(client redis.Cmdable, ttl time.Duration) *ResumeCache {
	if client == nil {
		return nil
	}
	return &ResumeCache{client: client, ttl: ttl}
}

func Key(blob string, modified time.Time) string {
	sum := sha256.Sum256([]byte(blob + "|" + strconv.FormatInt(modified.UnixNano(), 10)))
	return keyPrefix + hex.EncodeToString(sum[:16])
}

// Get returns the cached resume, or nil when there is none.
func (c *ResumeCache) Get(ctx context.Context, blob string, modified time.Time) (*resume.StructuredResume, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, Key(blob, modified)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var out resume.StructuredResume
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &out, nil
}

func (c *ResumeCache) Set(ctx context.Context, blob string, modified time.Time, parsed *resume.StructuredResume) error {
	if c == nil || parsed == nil {
		return nil
	}
	raw, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(blob, modified), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
