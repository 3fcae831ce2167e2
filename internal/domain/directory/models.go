package directory

const (
	StatusActive   = "Active"
	StatusResigned = "Resigned"
)

type Employee struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Age        int     `json:"age,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	Department string  `json:"department"`
	RoleTitle  string  `json:"roleTitle"`
	Skills     string  `json:"skills,omitempty"`
	JoinDate   string  `json:"joinDate"`
	ResignDate string  `json:"resignDate,omitempty"`
	Status     string  `json:"status"`
	Salary     float64 `json:"salary"`
	Location   string  `json:"location,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type Summary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Resigned int `json:"resigned"`
}
