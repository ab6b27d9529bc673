package domain

type Recommendation struct {
	SubjectUserID     string   `json:"subject_user_id"`
	CandidateUserID   string   `json:"candidate_user_id"`
	Score             int      `json:"score"`
	Reasons           []string `json:"reasons"`
	MutualConnections int      `json:"mutual_connections"`
}

// Explanation is the unfiltered evaluation of one subject/candidate pair.
type Explanation struct {
	SubjectUserID   string   `json:"subject_user_id"`
	CandidateUserID string   `json:"candidate_user_id"`
	RawScore        int      `json:"raw_score"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	Recommended     bool     `json:"recommended"`
	Excluded        bool     `json:"excluded"`
}

type Intro struct {
	CandidateUserID string   `json:"candidate_user_id"`
	Messages        []string `json:"messages"`
}
