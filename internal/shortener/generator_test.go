package shortener_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serroba/url-shorter/internal/shortener"
)

const testURL = "https://example.com/some/path"

func TestNew(t *testing.T) {
	t.Run("rejects unknown generator name", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: "rot13"})

		assert.Nil(t, gen)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"rot13"`)
	})

	t.Run("nanoid honors the configured length", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameNanoID, CodeLength: 12})
		require.NoError(t, err)

		value, err := gen(context.Background(), testURL)

		require.NoError(t, err)
		assert.Len(t, value, 12)
	})

	t.Run("nanoid defaults to length 8", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameNanoID})
		require.NoError(t, err)

		value, err := gen(context.Background(), testURL)

		require.NoError(t, err)
		assert.Len(t, value, 8)
	})

	t.Run("nanoid produces fresh codes for the same URL", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameNanoID})
		require.NoError(t, err)

		v1, err1 := gen(context.Background(), testURL)
		v2, err2 := gen(context.Background(), testURL)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, v1, v2)
	})

	t.Run("uuid produces parseable unique values", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameUUID})
		require.NoError(t, err)

		v1, err1 := gen(context.Background(), testURL)
		v2, err2 := gen(context.Background(), testURL)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, v1, v2)

		_, err = uuid.Parse(v1)
		assert.NoError(t, err)
	})

	t.Run("hash is deterministic for the same URL", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameHash, CodeLength: 10})
		require.NoError(t, err)

		v1, err1 := gen(context.Background(), testURL)
		v2, err2 := gen(context.Background(), testURL)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, v1, v2)
		assert.Len(t, v1, 10)
	})

	t.Run("hash rejects lengths beyond the digest", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameHash, CodeLength: 100})

		assert.Nil(t, gen)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "100")
	})

	t.Run("hash accepts the full digest length", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameHash, CodeLength: 64})
		require.NoError(t, err)

		value, err := gen(context.Background(), testURL)

		require.NoError(t, err)
		assert.Len(t, value, 64)
	})

	t.Run("hash treats equivalent URLs as one", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameHash})
		require.NoError(t, err)

		v1, err1 := gen(context.Background(), "https://Example.com/path/")
		v2, err2 := gen(context.Background(), "https://example.com/path")

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, v1, v2)
	})

	t.Run("hash distinguishes different URLs", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameHash})
		require.NoError(t, err)

		v1, err1 := gen(context.Background(), "https://example.com/one")
		v2, err2 := gen(context.Background(), "https://example.com/two")

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, v1, v2)
	})
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases scheme and host", "HTTPS://Example.COM/Path", "https://example.com/Path"},
		{"strips default http port", "http://example.com:80/x", "http://example.com/x"},
		{"strips default https port", "https://example.com:443/x", "https://example.com/x"},
		{"keeps custom port", "https://example.com:8443/x", "https://example.com:8443/x"},
		{"strips trailing slash", "https://example.com/path/", "https://example.com/path"},
		{"keeps root slash", "https://example.com/", "https://example.com/"},
		{"drops fragment", "https://example.com/path#frag", "https://example.com/path"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := shortener.NormalizeURL(tc.in)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClckRuGenerator(t *testing.T) {
	t.Run("returns the delegate's short url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, testURL, r.URL.Query().Get("url"))
			_, _ = w.Write([]byte("https://clck.ru/abc\n"))
		}))
		defer srv.Close()

		gen, err := shortener.New(shortener.Config{Name: shortener.NameClckRu, Endpoint: srv.URL})
		require.NoError(t, err)

		value, err := gen(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, "https://clck.ru/abc", value)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		gen, err := shortener.New(shortener.Config{Name: shortener.NameClckRu, Endpoint: srv.URL})
		require.NoError(t, err)

		_, err = gen(context.Background(), testURL)

		assert.Error(t, err)
	})

	t.Run("empty body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		defer srv.Close()

		gen, err := shortener.New(shortener.Config{Name: shortener.NameClckRu, Endpoint: srv.URL})
		require.NoError(t, err)

		_, err = gen(context.Background(), testURL)

		assert.Error(t, err)
	})

	t.Run("unreachable delegate is an error", func(t *testing.T) {
		gen, err := shortener.New(shortener.Config{Name: shortener.NameClckRu, Endpoint: "http://127.0.0.1:1"})
		require.NoError(t, err)

		_, err = gen(context.Background(), testURL)

		assert.Error(t, err)
	})
}
