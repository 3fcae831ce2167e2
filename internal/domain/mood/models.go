package mood

// Survey scoring: five 1-5 answers summed, 5..25 total.
const (
	MoodHappy    = "Happy"
	MoodNeutral  = "Neutral"
	MoodStressed = "Stressed"

	MinScore = 5
	MaxScore = 25
)

type Entry struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Mood       string `json:"mood"`
	Score      int    `json:"score,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	LogDate    string `json:"logDate"`
	CreatedAt  string `json:"createdAt"`
}

// LabelForScore maps a survey total to a mood label.
func LabelForScore(score int) string {
	switch {
	case score >= 20:
		return MoodHappy
	case score >= 13:
		return MoodNeutral
	default:
		return MoodStressed
	}
}
