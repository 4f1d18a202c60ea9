package dto

// InterviewDTO is shared by create and update; nil means "not sent".
// Date is YYYY-MM-DD or RFC3339, status accepts the value or its display label.
type InterviewDTO struct {
	UserID                     *string `json:"userId"`
	Role                       *string `json:"role"`
	Company                    *string `json:"company"`
	Date                       *string `json:"date"`
	Time                       *string `json:"time"`
	Duration                   *int    `json:"duration" binding:"omitempty,min=1"`
	Mode                       *string `json:"mode"`
	Status                     *string `json:"status"`
	MeetingLink                *string `json:"meetingLink"`
	Platform                   *string `json:"platform"`
	Interviewer                *string `json:"interviewer"`
	InterviewerEmail           *string `json:"interviewerEmail"`
	Address                    *string `json:"address"`
	Outcome                    *string `json:"outcome"`
	Notes                      *string `json:"notes"`
	Feedback                   *string `json:"feedback"`
	FeedbackVisibleToCandidate *bool   `json:"feedbackVisibleToCandidate"`
}
