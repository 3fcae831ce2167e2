package analytics

import (
	"context"
	"sort"

	"workforce/internal/domain/directory"
	"workforce/internal/domain/feedback"
	"workforce/internal/domain/mood"
	"workforce/internal/domain/tasks"
)

// Service computes the dashboard aggregates. Plain grouping and
// averaging over read-all results; there is no aggregation engine.
type Service struct {
	Employees *directory.Store
	Tasks     *tasks.Store
	Mood      *mood.Store
	Feedback  *feedback.Store
}

func NewService(employees *directory.Store, taskStore *tasks.Store, moodStore *mood.Store, feedbackStore *feedback.Store) *Service {
	return &Service{Employees: employees, Tasks: taskStore, Mood: moodStore, Feedback: feedbackStore}
}

type DepartmentStat struct {
	Department string  `json:"department"`
	Headcount  int     `json:"headcount"`
	AvgSalary  float64 `json:"avgSalary"`
}

type FeedbackStat struct {
	EmployeeID int64   `json:"employeeId"`
	Employee   string  `json:"employee"`
	AvgRating  float64 `json:"avgRating"`
	Count      int     `json:"count"`
}

type Dashboard struct {
	Employees        directory.Summary `json:"employees"`
	Departments      []DepartmentStat  `json:"departments"`
	GenderRatio      map[string]int    `json:"genderRatio"`
	TasksByStatus    map[string]int    `json:"tasksByStatus"`
	TasksByPriority  map[string]int    `json:"tasksByPriority"`
	MoodDistribution map[string]int    `json:"moodDistribution"`
	FeedbackSummary  []FeedbackStat    `json:"feedbackSummary"`
}

func (s *Service) BuildDashboard(ctx context.Context) (Dashboard, error) {
	employees, err := s.Employees.ListEmployees(ctx, directory.ListFilter{})
	if err != nil {
		return Dashboard{}, err
	}

	dash := Dashboard{
		GenderRatio: map[string]int{},
	}
	dash.Employees = summarize(employees)
	dash.Departments = departmentStats(employees)
	for _, emp := range employees {
		if emp.Status != directory.StatusActive || emp.Gender == "" {
			continue
		}
		dash.GenderRatio[emp.Gender]++
	}

	if dash.TasksByStatus, err = s.Tasks.CountByStatus(ctx); err != nil {
		return Dashboard{}, err
	}
	if dash.TasksByPriority, err = s.Tasks.CountByPriority(ctx); err != nil {
		return Dashboard{}, err
	}
	if dash.MoodDistribution, err = s.Mood.CountByMood(ctx, "", ""); err != nil {
		return Dashboard{}, err
	}

	receiverStats, err := s.Feedback.SummaryByReceiver(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	names := map[int64]string{}
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}
	for _, stat := range receiverStats {
		name := names[stat.ReceiverID]
		if name == "" {
			name = "Unknown"
		}
		dash.FeedbackSummary = append(dash.FeedbackSummary, FeedbackStat{
			EmployeeID: stat.ReceiverID,
			Employee:   name,
			AvgRating:  stat.AvgRating,
			Count:      stat.Count,
		})
	}

	return dash, nil
}

func summarize(employees []directory.Employee) directory.Summary {
	summary := directory.Summary{Total: len(employees)}
	for _, emp := range employees {
		switch emp.Status {
		case directory.StatusActive:
			summary.Active++
		case directory.StatusResigned:
			summary.Resigned++
		}
	}
	return summary
}

// departmentStats counts active headcount and mean salary per
// department, sorted by department name.
func departmentStats(employees []directory.Employee) []DepartmentStat {
	type acc struct {
		count int
		total float64
	}
	byDept := map[string]*acc{}
	for _, emp := range employees {
		if emp.Status != directory.StatusActive {
			continue
		}
		a := byDept[emp.Department]
		if a == nil {
			a = &acc{}
			byDept[emp.Department] = a
		}
		a.count++
		a.total += emp.Salary
	}

	out := make([]DepartmentStat, 0, len(byDept))
	for dept, a := range byDept {
		stat := DepartmentStat{Department: dept, Headcount: a.count}
		if a.count > 0 {
			stat.AvgSalary = a.total / float64(a.count)
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// MoodTrend groups entries by month and mood label.
type TrendPoint struct {
	Period string `json:"period"`
	Mood   string `json:"mood"`
	Count  int    `json:"count"`
}

func (s *Service) MoodTrend(ctx context.Context, from, to string) ([]TrendPoint, error) {
	entries, err := s.Mood.ListEntries(ctx, mood.ListFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	counts := map[[2]string]int{}
	for _, entry := range entries {
		period := entry.LogDate
		if len(period) >= 7 {
			period = period[:7] // YYYY-MM
		}
		counts[[2]string{period, entry.Mood}]++
	}

	out := make([]TrendPoint, 0, len(counts))
	for key, count := range counts {
		out = append(out, TrendPoint{Period: key[0], Mood: key[1], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period == out[j].Period {
			return out[i].Mood < out[j].Mood
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}
