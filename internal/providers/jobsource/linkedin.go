package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	linkedInTokenURL  = "https://www.linkedin.com/oauth/v2/accessToken"
	linkedInSearchURL = "https://api.linkedin.com/v2/jobSearch"
)

// LinkedIn searches the job search API with an app-level client credentials token.
type LinkedIn struct {
	cc        *clientcredentials.Config
	searchURL string
	http      *http.Client
}

func NewLinkedIn(clientID, clientSecret string) *LinkedIn {
	var cc *clientcredentials.Config
	if clientID != "" && clientSecret != "" {
		cc = &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     linkedInTokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
	}
	return &LinkedIn{cc: cc, searchURL: linkedInSearchURL, http: &http.Client{Timeout: 20 * time.Second}}
}

// WithEndpoints points the client at alternate token and search URLs.
func (l *LinkedIn) WithEndpoints(tokenURL, searchURL string) *LinkedIn {
	if l.cc != nil {
		l.cc.TokenURL = tokenURL
	}
	l.searchURL = searchURL
	return l
}

func (l *LinkedIn) Configured() bool { return l.cc != nil }

// ExperienceFilter maps a years band to LinkedIn experienceLevel codes.
func ExperienceFilter(band string) string {
	switch band {
	case "0-2":
		return "1,2"
	case "3-5":
		return "3,4"
	case "6+":
		return "5,6"
	}
	return ""
}

type linkedInResponse struct {
	Elements []struct {
		JobPosting struct {
			ID                json.RawMessage `json:"id"`
			Title             string          `json:"title"`
			CompanyName       string          `json:"companyName"`
			FormattedLocation string          `json:"formattedLocation"`
			ListedAt          int64           `json:"listedAt"`
			Description       struct {
				Text string `json:"text"`
			} `json:"description"`
			JobFunctions []struct {
				Name string `json:"name"`
			} `json:"jobFunctions"`
			Salary *struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"salary"`
			ApplyMethod struct {
				CompanyApplyURL string `json:"companyApplyUrl"`
			} `json:"applyMethod"`
		} `json:"jobPosting"`
	} `json:"elements"`
	Paging struct {
		Total int `json:"total"`
	} `json:"paging"`
}

func (l *LinkedIn) Search(ctx context.Context, p SearchParams) (*Page, error) {
	if l.cc == nil {
		return nil, ErrNotConfigured
	}

	client := l.cc.Client(context.WithValue(ctx, oauth2.HTTPClient, l.http))

	q := url.Values{}
	q.Set("keywords", p.Query)
	q.Set("location", p.Location)
	q.Set("start", strconv.Itoa(p.Offset()))
	q.Set("count", strconv.Itoa(p.Limit))
	if lvl := ExperienceFilter(p.Experience); lvl != "" {
		q.Set("experienceLevel", lvl)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("LinkedIn API: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("LinkedIn API", resp); err != nil {
		return nil, err
	}

	var body linkedInResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("LinkedIn API: decode: %w", err)
	}

	out := make([]Listing, 0, len(body.Elements))
	for _, el := range body.Elements {
		jp := el.JobPosting
		id := trimQuotes(string(jp.ID))
		loc := orDefault(jp.FormattedLocation, "Location not specified")

		reqs := make([]string, 0, len(jp.JobFunctions))
		for _, f := range jp.JobFunctions {
			reqs = append(reqs, f.Name)
		}

		li := Listing{
			ID:           id,
			Title:        jp.Title,
			Company:      jp.CompanyName,
			Location:     loc,
			IsRemote:     strings.Contains(strings.ToLower(loc), "remote"),
			PostedDate:   time.UnixMilli(jp.ListedAt).UTC(),
			Description:  jp.Description.Text,
			Requirements: reqs,
			ApplyLink:    orDefault(jp.ApplyMethod.CompanyApplyURL, "https://linkedin.com/jobs/view/"+id),
		}
		if jp.Salary != nil {
			li.SalaryMin = intPtr(jp.Salary.Min)
			li.SalaryMax = intPtr(jp.Salary.Max)
		}
		out = append(out, li)
	}

	total := body.Paging.Total
	if total == 0 {
		total = len(out)
	}
	return &Page{Listings: out, Total: total}, nil
}
