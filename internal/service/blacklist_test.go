package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/serroba/url-shorter/internal/model"
)

func TestAnyActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name    string
		entries []model.BlacklistedClient
		want    bool
	}{
		{"no entries", nil, false},
		{"indefinite entry blocks", []model.BlacklistedClient{{Host: "h", Until: nil}}, true},
		{"future expiry blocks", []model.BlacklistedClient{{Host: "h", Until: &future}}, true},
		{"past expiry does not block", []model.BlacklistedClient{{Host: "h", Until: &past}}, false},
		{"expiry exactly now does not block", []model.BlacklistedClient{{Host: "h", Until: &now}}, false},
		{
			"one active among expired blocks",
			[]model.BlacklistedClient{
				{Host: "h", Until: &past},
				{Host: "h", Until: &future},
			},
			true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, anyActive(tc.entries, now))
		})
	}
}
