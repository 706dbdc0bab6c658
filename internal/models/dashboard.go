package models

type DashboardStats struct {
	SavedJobs         int64    `json:"saved_jobs"`
	GeneratedCVs      int64    `json:"generated_cvs"`
	InterviewSessions int64    `json:"interview_sessions"`
	UnfinishedCV      *SavedCV `json:"unfinished_cv,omitempty"`
	RecentJobs        []Job    `json:"recent_jobs"`
}
