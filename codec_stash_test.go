package keysetpager

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_StashCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	codec := NewStashCodec(NewMemoryStore())

	token, err := codec.Encode(ctx, `{"sig":"abcd1234","k":{}}`)
	require.NoError(t, err)

	// The token is an opaque v4 UUID, not the payload itself.
	parsed, err := uuid.Parse(token)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())

	got, err := codec.Decode(ctx, token)
	require.NoError(t, err)
	require.Equal(t, `{"sig":"abcd1234","k":{}}`, got)
}

func Test_StashCodec_FreshKeyPerEncode(t *testing.T) {
	ctx := context.Background()
	codec := NewStashCodec(NewMemoryStore())

	first, err := codec.Encode(ctx, "v")
	require.NoError(t, err)
	second, err := codec.Encode(ctx, "v")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func Test_StashCodec_UnknownKey(t *testing.T) {
	codec := NewStashCodec(NewMemoryStore())

	_, err := codec.Decode(context.Background(), uuid.NewString())
	require.Error(t, err)
}

func Test_MemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Set(ctx, "k", "v2"))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)

	_, err = store.Get(ctx, "missing")
	require.Error(t, err)
}

func Test_RedisStore_KeyPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{"no prefix", "", "abc", "abc"},
		{"with prefix", "cursors", "abc", "cursors:abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewRedisStore(nil, tt.prefix, 0)
			require.Equal(t, tt.want, store.redisKey(tt.key))
		})
	}
}
