package taskstore

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	seedVerbs     = []string{"Fix", "Review", "Write", "Refactor", "Deploy", "Document", "Test", "Migrate", "Design", "Audit"}
	seedObjects   = []string{"login flow", "billing page", "search API", "onboarding email", "dashboard charts", "export job", "rate limiter", "settings form", "audit log", "mobile layout"}
	seedAssignees = []string{"Aarav", "Diya", "Kabir", "Meera", "Rohan", "Sara", "Vikram", "Zoya"}
	seedLabels    = []string{"frontend", "backend", "bug", "feature", "urgent", "docs", "infra", "design"}
	seedPriority  = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
)

// Generate builds a deterministic dataset of n tasks from the given seed.
// IDs are TASK-0001 style; createdAt spreads backwards from now by hours.
func Generate(n int, seed int64, now time.Time) []Task {
	r := rand.New(rand.NewSource(seed))
	tasks := make([]Task, 0, n)
	now = now.Truncate(time.Minute)

	for i := 0; i < n; i++ {
		created := now.Add(-time.Duration(r.Intn(24*90)) * time.Hour)
		due := created.Add(time.Duration(24+r.Intn(24*30)) * time.Hour)

		labels := []string{seedLabels[r.Intn(len(seedLabels))]}
		if r.Intn(3) == 0 {
			second := seedLabels[r.Intn(len(seedLabels))]
			if second != labels[0] {
				labels = append(labels, second)
			}
		}

		tasks = append(tasks, Task{
			ID:        fmt.Sprintf("TASK-%04d", i+1),
			Priority:  seedPriority[r.Intn(len(seedPriority))],
			Status:    Statuses[r.Intn(len(Statuses))],
			Labels:    labels,
			Name:      seedVerbs[r.Intn(len(seedVerbs))] + " " + seedObjects[r.Intn(len(seedObjects))],
			DueDate:   due,
			CreatedAt: created,
			Assignee:  seedAssignees[r.Intn(len(seedAssignees))],
		})
	}

	return tasks
}
