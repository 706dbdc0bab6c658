package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionRecord struct {
	Content  string `bson:"content" json:"content"`
	Category string `bson:"category,omitempty" json:"category,omitempty"` // technical|behavioral|situational
}

type AnswerRecord struct {
	Content string `bson:"content" json:"content"`
}

// FeedbackRecord stores the heuristic result; Score is normalized to 0..1.
type FeedbackRecord struct {
	Content      string   `bson:"content" json:"content"`
	Score        float64  `bson:"score" json:"score"`
	Strengths    []string `bson:"strengths" json:"strengths"`
	Improvements []string `bson:"improvements" json:"improvements"`
}

// InterviewSession keeps Questions, Answers and Feedback index-aligned.
type InterviewSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID   string             `bson:"session_id" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	JobTitle    string             `bson:"job_title" json:"job_title"`
	Questions   []QuestionRecord   `bson:"questions" json:"questions"`
	Answers     []AnswerRecord     `bson:"answers" json:"answers"`
	Feedback    []FeedbackRecord   `bson:"feedback" json:"feedback"`
	IsComplete  bool               `bson:"is_complete" json:"is_complete"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Feedback is the interview-coach result on the 0..100 scale.
type Feedback struct {
	Feedback     string   `json:"feedback"`
	Score        int      `json:"score"`
	Improvements []string `json:"improvements"`
	Strengths    []string `json:"strengths"`
}
