package extract

import (
	"context"

	"github.com/yoockh/jobmate/internal/models"
)

// Document is the result of reading a CV file.
type Document struct {
	Text string               `json:"extractedText"`
	Data models.ExtractedData `json:"extractedData"`
}

// Extractor reads a CV at fileURL (gs://, https:// or a client blob URL).
type Extractor interface {
	Extract(ctx context.Context, fileURL string) (*Document, error)
}

const sampleExperience = `Senior Frontend Developer
TechCorp Inc. | Jan 2020 - Present
• Developed responsive web applications using React and TypeScript
• Implemented state management with Redux and Context API
• Collaborated with UX/UI designers to implement pixel-perfect designs`

const sampleEducation = `Bachelor of Science in Computer Science
University of Technology | 2013 - 2017`

const sampleText = `John Smith
Frontend Developer
New York, NY | john.smith@example.com | (555) 123-4567

SKILLS
React, TypeScript, JavaScript, CSS, HTML5, Redux, Next.js

EXPERIENCE
` + sampleExperience + `

Frontend Developer
WebSolutions | March 2017 - Dec 2019
• Built and maintained multiple client websites using React
• Improved site performance by 40% through code optimization

EDUCATION
` + sampleEducation

// Fixed ignores the file and returns the same sample CV every time.
type Fixed struct{}

func (Fixed) Extract(_ context.Context, _ string) (*Document, error) {
	return &Document{
		Text: sampleText,
		Data: models.ExtractedData{
			JobTitle:   "Frontend Developer",
			Skills:     []string{"React", "TypeScript", "JavaScript", "CSS", "HTML5", "Redux", "Next.js"},
			Experience: sampleExperience,
			Education:  sampleEducation,
		},
	}, nil
}
