package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yoockh/jobmate/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFeedbackItems = 3

// foldAnswer lowercases and strips diacritics so "Résultat" still hits "result".
func foldAnswer(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// EvaluateAnswer scores an interview answer with fixed length and keyword rules.
// The question text does not influence the result.
func EvaluateAnswer(jobTitle, _, answer string) models.Feedback {
	a := foldAnswer(answer)
	n := utf8.RuneCountInString(answer)

	return models.Feedback{
		Feedback:     feedbackSentence(a, n),
		Score:        answerScore(a, n),
		Improvements: improvements(a, n, strings.ToLower(jobTitle)),
		Strengths:    strengths(a, n),
	}
}

func feedbackSentence(a string, n int) string {
	switch {
	case n < 50:
		return "Your answer was quite brief. Consider providing more details and examples to fully demonstrate your skills and experience."
	case containsAny(a, "example", "instance", "case"):
		return "Good job providing specific examples in your answer. This helps the interviewer understand your past experiences and achievements."
	case containsAny(a, "challenge", "problem", "obstacle"):
		return "Your answer effectively addresses challenges you've faced. Consider adding more details about the specific actions you took to overcome these challenges."
	case n > 300:
		return "You provided a comprehensive answer with good details. Consider structuring your response using the STAR method (Situation, Task, Action, Result) for even greater clarity."
	default:
		return "Your answer is satisfactory. To strengthen it further, try to include specific examples, quantifiable achievements, and clear connections to the skills required for the position."
	}
}

func answerScore(a string, n int) int {
	score := 70
	if n > 100 {
		score += 5
	}
	if n > 200 {
		score += 5
	}
	// overly long answers lose focus
	if n > 400 {
		score -= 5
	}
	for _, kw := range []string{"example", "result", "learned", "achieved"} {
		if strings.Contains(a, kw) {
			score += 5
		}
	}
	if containsAny(a, "challenge", "problem") {
		score += 5
	}
	if containsAny(a, "team", "collaborat") {
		score += 5
	}
	return max(0, min(100, score))
}

func improvements(a string, n int, title string) []string {
	var out []string
	if n < 100 {
		out = append(out, "Provide more detailed responses with specific examples")
	}
	if !containsAny(a, "example", "instance", "case") {
		out = append(out, "Include concrete examples from your past experience")
	}
	if !containsAny(a, "result", "outcome", "achievement") {
		out = append(out, "Emphasize the results and outcomes of your actions")
	}
	if containsAny(title, "developer", "engineer") {
		out = append(out, "Highlight specific technical skills related to the position")
	}
	if containsAny(title, "manager", "lead") {
		out = append(out, "Emphasize leadership examples and team management skills")
	}
	if len(out) < maxFeedbackItems {
		out = append(out,
			"Use the STAR method (Situation, Task, Action, Result) to structure your answers",
			"Quantify your achievements with specific metrics when possible",
			"Practice concise delivery while maintaining comprehensive content",
		)
	}
	return out[:maxFeedbackItems]
}

func strengths(a string, n int) []string {
	var out []string
	if n > 150 {
		out = append(out, "Good level of detail in your responses")
	}
	if containsAny(a, "example", "instance", "case") {
		out = append(out, "Effective use of specific examples to illustrate your points")
	}
	if containsAny(a, "result", "outcome", "achievement") {
		out = append(out, "Strong focus on results and achievements")
	}
	if containsAny(a, "team", "colleague", "collaboration") {
		out = append(out, "Demonstrated good teamwork and collaborative skills")
	}
	if containsAny(a, "challenge", "problem", "solution") {
		out = append(out, "Showed problem-solving abilities and resilience")
	}
	if len(out) < maxFeedbackItems {
		out = append(out,
			"Clear communication style",
			"Relevant experience for the position",
			"Good understanding of the role requirements",
		)
	}
	return out[:maxFeedbackItems]
}
