package tasks

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

var Statuses = []string{StatusPending, StatusInProgress, StatusDone}

var Priorities = []string{"Low", "Medium", "High"}

type Task struct {
	ID         int64  `json:"id"`
	TaskName   string `json:"taskName"`
	EmployeeID int64  `json:"employeeId"`
	AssignedBy int64  `json:"assignedBy,omitempty"`
	DueDate    string `json:"dueDate"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func ValidStatus(status string) bool {
	for _, candidate := range Statuses {
		if status == candidate {
			return true
		}
	}
	return false
}

func ValidPriority(priority string) bool {
	for _, candidate := range Priorities {
		if priority == candidate {
			return true
		}
	}
	return false
}
