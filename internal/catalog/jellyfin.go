package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"medialetter/internal/core"
)

// JellyfinClient implements Source against the Jellyfin Items API.
type JellyfinClient struct {
	baseURL        string
	apiKey         string
	includePosters bool
	httpClient     *http.Client
}

// NewJellyfinClient builds a catalog client for the given server. A nil
// httpClient falls back to http.DefaultClient.
func NewJellyfinClient(baseURL, apiKey string, includePosters bool, httpClient *http.Client) *JellyfinClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &JellyfinClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		includePosters: includePosters,
		httpClient:     httpClient,
	}
}

// jellyfinItem mirrors the subset of the Items API response we consume.
type jellyfinItem struct {
	ID               string   `json:"Id"`
	Name             string   `json:"Name"`
	Type             string   `json:"Type"`
	ProductionYear   int      `json:"ProductionYear"`
	Overview         string   `json:"Overview"`
	Genres           []string `json:"Genres"`
	OfficialRating   string   `json:"OfficialRating"`
	CommunityRating  float64  `json:"CommunityRating"`
	DateCreated      time.Time `json:"DateCreated"`
	SeriesName       string   `json:"SeriesName"`
	ParentIndexNumber int     `json:"ParentIndexNumber"`
	IndexNumber      int      `json:"IndexNumber"`
	AlbumArtist      string   `json:"AlbumArtist"`
	ChildCount       int      `json:"ChildCount"`
	LibraryName      string   `json:"LibraryName"`
	People           []struct {
		Name string `json:"Name"`
		Type string `json:"Type"`
	} `json:"People"`
	ImageTags map[string]string `json:"ImageTags"`
}

type jellyfinItemsResponse struct {
	Items            []jellyfinItem `json:"Items"`
	TotalRecordCount int            `json:"TotalRecordCount"`
}

// RecentlyAdded queries the server for items created after q.Since, newest
// first. The server filters by type; the library allow-list is applied
// client-side, so the request over-fetches to keep the post-filter count at
// the limit.
func (c *JellyfinClient) RecentlyAdded(ctx context.Context, q Query) ([]*core.MediaRecord, error) {
	params := url.Values{}
	params.Set("Recursive", "true")
	params.Set("SortBy", "DateCreated")
	params.Set("SortOrder", "Descending")
	params.Set("MinDateCreated", q.Since.UTC().Format(time.RFC3339))
	params.Set("IncludeItemTypes", strings.Join(q.Types, ","))
	params.Set("Limit", strconv.Itoa(q.Limit*2))
	params.Set("Fields", "Overview,Genres,People,DateCreated,OfficialRating,CommunityRating")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/Items?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog response: %w", err)
	}

	var decoded jellyfinItemsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	records := make([]*core.MediaRecord, 0, q.Limit)
	for _, item := range decoded.Items {
		if !libraryAllowed(item.LibraryName, q.Libraries) {
			continue
		}
		records = append(records, c.toRecord(item))
		if len(records) == q.Limit {
			break
		}
	}
	return records, nil
}

func libraryAllowed(library string, allowList []string) bool {
	if len(allowList) == 0 {
		return true
	}
	for _, allowed := range allowList {
		if strings.EqualFold(library, allowed) {
			return true
		}
	}
	return false
}

func (c *JellyfinClient) toRecord(item jellyfinItem) *core.MediaRecord {
	r := &core.MediaRecord{
		ID:              item.ID,
		Title:           item.Name,
		Type:            item.Type,
		Year:            item.ProductionYear,
		Overview:        item.Overview,
		Genres:          item.Genres,
		Rating:          item.OfficialRating,
		CommunityRating: item.CommunityRating,
		DateAdded:       item.DateCreated,
		Library:         item.LibraryName,
	}
	if r.Title == "" {
		r.Title = "Unknown Title"
	}

	for _, person := range item.People {
		switch person.Type {
		case "Director":
			if r.Director == "" {
				r.Director = person.Name
			}
		case "Actor":
			if len(r.Cast) < core.MaxCastNames {
				r.Cast = append(r.Cast, person.Name)
			}
		}
	}

	switch item.Type {
	case core.TypeSeason:
		r.SeriesName = item.SeriesName
		r.SeasonNumber = item.IndexNumber
	case core.TypeEpisode:
		r.SeriesName = item.SeriesName
		r.SeasonNumber = item.ParentIndexNumber
		r.EpisodeNumber = item.IndexNumber
	case core.TypeMusicAlbum:
		r.AlbumArtist = item.AlbumArtist
		r.TrackCount = item.ChildCount
	case core.TypeAudio:
		r.AlbumArtist = item.AlbumArtist
	}

	if c.includePosters && item.ImageTags["Primary"] != "" {
		r.PosterURL = fmt.Sprintf("%s/Items/%s/Images/Primary", c.baseURL, item.ID)
	}
	return r
}
