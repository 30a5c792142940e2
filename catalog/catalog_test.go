package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "standard share url",
			url:  "https://www.youtube.com/playlist?list=PL9tY0BWXOZFs8pF2OzuO1Fj6sSqwbz0aW",
			want: "PL9tY0BWXOZFs8pF2OzuO1Fj6sSqwbz0aW",
		},
		{
			name: "watch url with list param",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123&index=2",
			want: "PLabc123",
		},
		{
			name:    "url without a playlist",
			url:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "empty url",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
