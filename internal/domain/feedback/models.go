package feedback

type Entry struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Message    string `json:"message"`
	Rating     int    `json:"rating"`
	LogDate    string `json:"logDate"`
	CreatedAt  string `json:"createdAt"`
}

// ReceiverSummary is the per-employee aggregate shown on the analytics
// page: average rating and number of entries received.
type ReceiverSummary struct {
	ReceiverID int64   `json:"receiverId"`
	AvgRating  float64 `json:"avgRating"`
	Count      int     `json:"count"`
}

func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
