package jobsource

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MockTotal is the pretend result count reported for generated pages.
const MockTotal = 100

var (
	mockCompanies = []string{
		"Google", "Microsoft", "Amazon", "Apple", "Facebook", "Netflix", "Tesla",
		"IBM", "Oracle", "Adobe", "Salesforce", "Twitter", "Uber", "Airbnb",
	}
	mockSkills = []string{
		"JavaScript", "TypeScript", "React", "Angular", "Vue.js", "Node.js", "Python", "Java",
		"C#", ".NET", "SQL", "MongoDB", "AWS", "Azure", "Docker", "Kubernetes",
	}
	mockLocations = []string{"New York", "San Francisco", "Seattle", "Boston", "Austin", "Remote"}
	mockTitles    = []string{"Software Engineer", "Data Scientist", "Product Manager", "UX Designer", "DevOps Engineer"}
)

func experienceLevels(band string) []string {
	switch band {
	case "0-2":
		return []string{"Entry Level", "Associate"}
	case "3-5":
		return []string{"Associate", "Mid-Senior Level"}
	case "6+":
		return []string{"Mid-Senior Level", "Director", "Executive"}
	}
	return []string{"Entry Level", "Associate", "Mid-Senior Level", "Director", "Executive"}
}

func mockSeed(p SearchParams) (uint64, uint64) {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%d|%d", strings.ToLower(p.Query), strings.ToLower(p.Location), p.Experience, p.Page, p.Limit)
	s := h.Sum64()
	return s, s ^ 0x9e3779b97f4a7c15
}

// Mock generates a page of plausible listings. The same params always yield the
// same titles, companies, locations and salaries; IDs and posted dates are
// relative to now.
func Mock(p SearchParams, now time.Time) []Listing {
	rng := rand.New(rand.NewPCG(mockSeed(p)))
	levels := experienceLevels(p.Experience)

	locations := mockLocations
	if p.Location != "" {
		locations = []string{p.Location}
	}

	queryTitle := ""
	if q := strings.TrimSpace(p.Query); q != "" {
		queryTitle = cases.Title(language.English).String(q) + " Specialist"
	}

	out := make([]Listing, 0, p.Limit)
	for i := 0; i < p.Limit; i++ {
		company := mockCompanies[rng.IntN(len(mockCompanies))]
		loc := locations[rng.IntN(len(locations))]
		title := queryTitle
		if title == "" || rng.IntN(2) == 1 {
			title = mockTitles[rng.IntN(len(mockTitles))]
		}
		level := levels[rng.IntN(len(levels))]
		remote := loc == "Remote" || rng.IntN(5) == 0

		reqs := []string{fmt.Sprintf("%d+ years of experience in %s", 1+rng.IntN(5), strings.ToLower(title))}
		for _, idx := range rng.Perm(len(mockSkills))[:2+rng.IntN(3)] {
			reqs = append(reqs, "Proficiency in "+mockSkills[idx])
		}

		base := 70000 + rng.IntN(80000)
		top := base + 20000 + rng.IntN(30000)

		where := loc + "-based"
		if remote {
			where = "remote"
		}
		desc := fmt.Sprintf(
			"We are looking for a talented %s to join our team at %s. This is a %s position offering competitive compensation and opportunities for growth.",
			title, company, where,
		)

		posted := now.Add(-time.Duration(rng.IntN(14*24)) * time.Hour)

		out = append(out, Listing{
			ID:              fmt.Sprintf("job-%d-%d", p.Offset()+i, now.UnixMilli()),
			Title:           title,
			Company:         company,
			Location:        loc,
			IsRemote:        remote,
			PostedDate:      posted.UTC(),
			Description:     desc,
			Requirements:    reqs,
			ExperienceLevel: level,
			SalaryMin:       &base,
			SalaryMax:       &top,
			ApplyLink:       "https://linkedin.com/jobs/search/?keywords=" + url.QueryEscape(title+" "+company),
		})
	}
	return out
}
