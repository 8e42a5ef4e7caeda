package vacation

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID            string `json:"id"`
	Employee      string `json:"employee"`
	Department    string `json:"department"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	DaysRequested int    `json:"daysRequested"`
	DaysAvailable int    `json:"daysAvailable"`
	Reason        string `json:"reason,omitempty"`
	Status        string `json:"status"`
	RequestDate   string `json:"requestDate"`
}

// StatusCounts backs the pending/approved/rejected tabs.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
