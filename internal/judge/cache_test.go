package judge

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradekit/internal/answer"
)

func TestNewRedisCache_BadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"wrong scheme", "http://localhost:6379"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisCache(context.Background(), tt.url, time.Minute)
			assert.Error(t, err)
		})
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", answer.Verdict{Correct: true, Confidence: 0.5}))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, answer.Verdict{Correct: true, Confidence: 0.5}, v)
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("GRADEKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GRADEKIT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	key := CacheKey(answer.JudgeRequest{Question: t.Name(), CorrectAnswer: "x", Answer: time.Now().String()})
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	want := answer.Verdict{Correct: true, Confidence: 0.75, Reasoning: "ok"}
	require.NoError(t, c.Set(ctx, key, want))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
