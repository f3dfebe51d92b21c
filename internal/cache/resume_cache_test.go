package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	k := Key("resume/cv.pdf", at)
	assert.True(t, strings.HasPrefix(k, keyPrefix))
	assert.Equal(t, k, Key("resume/cv.pdf", at))
	assert.NotEqual(t, k, Key("resume/cv.pdf", at.Add(time.Second)))
	assert.NotEqual(t, k, Key("resume/other.pdf", at))
}

func TestDisabledCache(t *testing.T) {
	c := NewResumeCache(nil, time.Hour)
	assert.Nil(t, c)

	got, err := c.Get(context.Background(), "resume/cv.pdf", time.Now())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(context.Background(), "resume/cv.pdf", time.Now(), &resume.StructuredResume{Name: "x"}))
}

func TestConnectRedis_Unreachable(t *testing.T) {
	_, err := ConnectRedis(context.Background(), config.CacheConfig{RedisAddr: "127.0.0.1:1"}, 1, nil)
	assert.Error(t, err)
}
