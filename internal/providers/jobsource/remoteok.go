package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yoockh/jobmate/internal/models"
)

// RemoteOK is the free public board used when no paid key is configured.
type RemoteOK struct {
	url  string
	http *http.Client
}

func NewRemoteOK() *RemoteOK {
	return &RemoteOK{url: "https://remoteok.io/api", http: &http.Client{Timeout: 30 * time.Second}}
}

func (r *RemoteOK) WithURL(u string) *RemoteOK { r.url = u; return r }

func (r *RemoteOK) Name() string { return "RemoteOK API" }

type remoteOKItem struct {
	ID          json.RawMessage `json:"id"`
	Position    string          `json:"position"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Date        string          `json:"date"`
	Tags        []string        `json:"tags"`
}

func (r *RemoteOK) Fetch(ctx context.Context) ([]models.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; JobMateFetcher/1.0)")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RemoteOK API: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("RemoteOK API", resp); err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("RemoteOK API: decode: %w", err)
	}

	now := time.Now().UTC()
	var out []models.Job
	// element 0 is the legal notice
	for i, item := range raw {
		if i == 0 {
			continue
		}
		var it remoteOKItem
		if err := json.Unmarshal(item, &it); err != nil {
			continue
		}
		u := it.URL
		if u == "" {
			u = "https://remoteok.io/l/" + trimQuotes(string(it.ID))
		}
		out = append(out, models.Job{
			Title:        orDefault(it.Position, "Unknown Position"),
			Company:      orDefault(it.Company, "Unknown Company"),
			Location:     orDefault(it.Location, "Remote"),
			Description:  it.Description,
			URL:          u,
			IsRemote:     true,
			PostedDate:   parseTime(it.Date, now),
			Requirements: it.Tags,
			Source:       r.Name(),
		})
	}
	return out, nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
