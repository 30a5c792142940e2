package catalog

// go generate: mockery --name Client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-resty/resty/v2"

	"github.com/studyhall/studyhall-api/models"
)

const baseURL = "https://www.googleapis.com/youtube/v3"

// maxPlaylistItems caps one ingestion at a single catalog page
const maxPlaylistItems = "50"

var playlistIDPattern = regexp.MustCompile(`[?&]list=([^&]+)`)

// Playlist is the catalog collaborator's view of one video playlist
type Playlist struct {
	Title  string
	Videos []models.Video
}

// Client fetches playlist metadata from the external video catalog. This is
// the one collaborator whose failures propagate to the caller; everything
// else in the service fails open.
type Client interface {
	FetchPlaylist(ctx context.Context, playlistID string) (*Playlist, error)
}

type youtubeClient struct {
	http   *resty.Client
	apiKey string
}

// New returns a catalog client backed by the YouTube Data API
func New(apiKey string) Client {
	return &youtubeClient{
		http:   resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

// ExtractPlaylistID pulls the playlist identifier out of a share URL
func ExtractPlaylistID(rawURL string) (string, error) {
	m := playlistIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("no playlist id in url %q", rawURL)
	}
	return m[1], nil
}

type playlistResponse struct {
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title      string `json:"title"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
			Thumbnails struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *youtubeClient) FetchPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	var meta playlistResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet",
			"id":   playlistID,
			"key":  c.apiKey,
		}).
		SetResult(&meta).
		Get("/playlists")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog returned %s for playlist %s", resp.Status(), playlistID)
	}

	title := "Untitled Playlist"
	if len(meta.Items) > 0 && meta.Items[0].Snippet.Title != "" {
		title = meta.Items[0].Snippet.Title
	}

	var items playlistItemsResponse
	resp, err = c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"maxResults": maxPlaylistItems,
			"playlistId": playlistID,
			"key":        c.apiKey,
		}).
		SetResult(&items).
		Get("/playlistItems")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items for %s: %w", playlistID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog returned %s for playlist items %s", resp.Status(), playlistID)
	}

	videos := make([]models.Video, 0, len(items.Items))
	for _, item := range items.Items {
		thumbnail := item.Snippet.Thumbnails.Medium.URL
		if thumbnail == "" {
			thumbnail = item.Snippet.Thumbnails.Default.URL
		}
		videos = append(videos, models.Video{
			ID:        item.Snippet.ResourceID.VideoID,
			Title:     item.Snippet.Title,
			Thumbnail: thumbnail,
		})
	}

	return &Playlist{Title: title, Videos: videos}, nil
}
