// Package prompts holds the prompt templates sent to the completion providers.
// Builders are pure: they take structured input and return the prompt text.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"regexp"
	"strings"
	"text/template"

	"github.com/yoockh/jobmate/internal/models"
)

//go:embed templates/*.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"join": func(ss []string) string { return strings.Join(ss, ", ") },
}

var tmpl = template.Must(template.New("prompts").Funcs(funcs).ParseFS(files, "templates/*.tmpl"))

const (
	CVSystem          = "You are a professional CV writer. Create a well-structured, professional CV in HTML format that can be directly rendered in a web application."
	CoverLetterSystem = "You are a professional cover letter writer. Create well-structured, persuasive cover letters tailored to specific job descriptions without any explanatory notes or metadata."
	SACVSystem        = "You are a professional CV writer specializing in South African CV standards."
	AssistantSystem   = `You are JobMate AI, an AI assistant specialized in career advice, job searching, resume building, and interview preparation.
You help users with: career guidance, CV improvements, interview tips, job application strategies, and using the JobMate platform.
Keep responses helpful, concise (under 150 words), and focused on career development.
When appropriate, guide users to relevant features of the JobMate platform like CV Builder, Cover Letter Generator, Interview Coach, and Learning Resources.
Avoid discussing topics unrelated to careers and job searching.`
)

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

type CVInput struct {
	JobTitle       string
	Skills         []string
	WorkExperience string
	Education      string
	AdditionalInfo string
	TemplateStyle  string
}

type cvView struct {
	JobTitle       string
	TemplateStyle  string
	Profile        *models.Profile
	Summary        string
	Skills         string
	Experience     string
	Education      string
	Projects       string
	Certifications string
	AdditionalInfo string
}

// CV builds the HTML CV prompt. Request fields win over stored profile fields,
// and every missing section gets placeholder text.
func CV(in CVInput, p *models.Profile) (string, error) {
	v := cvView{
		JobTitle:       in.JobTitle,
		TemplateStyle:  firstNonEmpty(in.TemplateStyle, "professional"),
		Profile:        p,
		AdditionalInfo: in.AdditionalInfo,
	}

	var summary, profileSkills, experience, education string
	if p != nil {
		summary = p.ProfessionalSummary
		profileSkills = strings.Join(p.Skills, ", ")
		experience = recordsJSON(p.Experience)
		education = recordsJSON(p.Education)
		v.Projects = recordsJSON(p.Projects)
		v.Certifications = recordsJSON(p.Certifications)
	}

	v.Summary = firstNonEmpty(summary, in.AdditionalInfo, "Create a professional summary based on the skills and experience provided.")
	v.Skills = firstNonEmpty(strings.Join(in.Skills, ", "), profileSkills, "List of skills TBD")
	v.Experience = firstNonEmpty(in.WorkExperience, experience, "Work experience details TBD")
	v.Education = firstNonEmpty(in.Education, education, "Education details TBD")

	return render("cv.tmpl", v)
}

type CoverLetterInput struct {
	JobTitle       string
	JobDescription string
	Tone           models.Tone
	UserName       string
	UserSkills     string
	UserExperience string
}

var toneStyle = map[models.Tone]string{
	models.ToneFormal:       "Write in a professional business style with formal language.",
	models.ToneEnthusiastic: "Express passion and excitement for the role and company.",
	models.ToneDirect:       "Be concise and straightforward, focusing on key qualifications and fit.",
}

func CoverLetter(in CoverLetterInput) (string, error) {
	return render("cover_letter.tmpl", struct {
		CoverLetterInput
		ToneLower string
		ToneStyle string
	}{in, strings.ToLower(string(in.Tone)), toneStyle[in.Tone]})
}

var noteMarker = regexp.MustCompile(`(?i)note:`)

// CleanCoverLetter drops markdown emphasis and anything from a "note:" marker on.
func CleanCoverLetter(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	if loc := noteMarker.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimSpace(s)
}

// SouthAfricanCV builds the prompt for the profile-driven CV generator.
func SouthAfricanCV(p models.Profile, jobTitle, templateStyle string) (string, error) {
	return render("sa_cv.tmpl", struct {
		Profile       models.Profile
		JobTitle      string
		TemplateStyle string
	}{p, jobTitle, templateStyle})
}

// CVExtraction is the instruction sent alongside an uploaded CV document.
func CVExtraction() string {
	out, err := render("cv_extract.tmpl", nil)
	if err != nil {
		panic(err)
	}
	return out
}

func recordsJSON(rs []models.Record) string {
	if len(rs) == 0 {
		return ""
	}
	b, err := json.Marshal(rs)
	if err != nil {
		return ""
	}
	return string(b)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
