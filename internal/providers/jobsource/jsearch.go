package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yoockh/jobmate/internal/models"
)

const jsearchHost = "jsearch.p.rapidapi.com"

// JSearch is the paid RapidAPI job search.
type JSearch struct {
	apiKey  string
	query   string
	baseURL string
	http    *http.Client
}

func NewJSearch(apiKey, query string) *JSearch {
	if query == "" {
		query = "software developer"
	}
	return &JSearch{
		apiKey:  apiKey,
		query:   query,
		baseURL: "https://" + jsearchHost,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (j *JSearch) WithBaseURL(u string) *JSearch { j.baseURL = u; return j }

func (j *JSearch) Name() string { return "JSearch API" }

type jsearchResponse struct {
	Data []struct {
		JobTitle          string   `json:"job_title"`
		EmployerName      string   `json:"employer_name"`
		JobCity           string   `json:"job_city"`
		JobCountry        string   `json:"job_country"`
		JobDescription    string   `json:"job_description"`
		JobApplyLink      string   `json:"job_apply_link"`
		JobIsRemote       bool     `json:"job_is_remote"`
		JobPostedAt       string   `json:"job_posted_at_datetime_utc"`
		JobRequiredSkills []string `json:"job_required_skills"`
		JobMinSalary      *float64 `json:"job_min_salary"`
		JobMaxSalary      *float64 `json:"job_max_salary"`
	} `json:"data"`
}

func (j *JSearch) Fetch(ctx context.Context) ([]models.Job, error) {
	if j.apiKey == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("query", j.query)
	q.Set("page", "1")
	q.Set("num_pages", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", j.apiKey)
	req.Header.Set("X-RapidAPI-Host", jsearchHost)

	resp, err := j.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("JSearch API: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("JSearch API", resp); err != nil {
		return nil, err
	}

	var body jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("JSearch API: decode: %w", err)
	}

	now := time.Now().UTC()
	out := make([]models.Job, 0, len(body.Data))
	for _, d := range body.Data {
		loc := "Remote"
		if d.JobCity != "" {
			loc = d.JobCity + ", " + d.JobCountry
		}
		out = append(out, models.Job{
			Title:        orDefault(d.JobTitle, "Unknown Position"),
			Company:      orDefault(d.EmployerName, "Unknown Company"),
			Location:     loc,
			Description:  d.JobDescription,
			URL:          d.JobApplyLink,
			IsRemote:     d.JobIsRemote,
			PostedDate:   parseTime(d.JobPostedAt, now),
			Requirements: d.JobRequiredSkills,
			SalaryMin:    intPtr(d.JobMinSalary),
			SalaryMax:    intPtr(d.JobMaxSalary),
			Source:       j.Name(),
		})
	}
	return out, nil
}
