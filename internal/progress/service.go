// Package progress computes a goal's completion percentage from its tasks
// and subtasks and writes the result back onto the goal record.
package progress

import (
	"errors"
	"math"
	"strings"

	"lifetrack-backend/internal/models"

	"gorm.io/gorm"
)

type Method string

const (
	MethodSimple   Method = "simple"
	MethodWeighted Method = "weighted"
	MethodSubtasks Method = "subtasks"
	MethodHybrid   Method = "hybrid"
)

var ErrGoalNotFound = errors.New("goal not found")

// ParseMethod maps a query-string value onto a Method; unknown values fall
// back to simple, matching the original calculation dispatch.
func ParseMethod(s string) Method {
	switch Method(strings.ToLower(s)) {
	case MethodWeighted:
		return MethodWeighted
	case MethodSubtasks:
		return MethodSubtasks
	case MethodHybrid:
		return MethodHybrid
	default:
		return MethodSimple
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var priorityWeights = map[string]int{
	"high":   3,
	"medium": 2,
	"low":    1,
}

// Simple: completed tasks / total tasks * 100. 0 when there are no tasks.
func Simple(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0.0
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return round2(float64(completed) / float64(len(tasks)) * 100)
}

// Weighted: priority-weighted completion (high=3, medium=2, low=1, unknown=1).
func Weighted(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0.0
	}

	totalWeight := 0
	completedWeight := 0
	for _, t := range tasks {
		weight, ok := priorityWeights[strings.ToLower(t.Priority)]
		if !ok {
			weight = 1
		}
		totalWeight += weight
		if t.Completed {
			completedWeight += weight
		}
	}

	if totalWeight == 0 {
		return 0.0
	}
	return round2(float64(completedWeight) / float64(totalWeight) * 100)
}

// Subtasks counts only subtask completion. Tasks without subtasks contribute
// nothing to either side of the ratio; 0 when no subtasks exist at all.
func Subtasks(tasks []models.Task, subtasksByTask map[uint][]models.SubTask) float64 {
	if len(tasks) == 0 {
		return 0.0
	}

	totalItems := 0
	completedItems := 0
	for _, t := range tasks {
		for _, st := range subtasksByTask[t.ID] {
			totalItems++
			if st.Completed {
				completedItems++
			}
		}
	}

	if totalItems == 0 {
		return 0.0
	}
	return round2(float64(completedItems) / float64(totalItems) * 100)
}

// Hybrid prefers manual progress: with target_value > 0 it is
// min(current/target*100, 100); otherwise it falls back to Simple.
func Hybrid(goal *models.Goal, tasks []models.Task) float64 {
	if goal.TargetValue != nil && *goal.TargetValue > 0 {
		pct := goal.CurrentValue / *goal.TargetValue * 100
		return round2(math.Min(pct, 100.0))
	}
	return Simple(tasks)
}

// Compute loads the goal's non-deleted tasks (and subtasks when needed) and
// evaluates the requested method.
func Compute(db *gorm.DB, goalID uint, method Method) (float64, error) {
	var goal models.Goal
	if err := db.First(&goal, "id = ? AND deleted = ?", goalID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrGoalNotFound
		}
		return 0, err
	}

	var tasks []models.Task
	if err := db.Where("goal_id = ? AND deleted = ?", goalID, false).Find(&tasks).Error; err != nil {
		return 0, err
	}

	switch method {
	case MethodWeighted:
		return Weighted(tasks), nil
	case MethodSubtasks:
		byTask, err := loadSubtasks(db, tasks)
		if err != nil {
			return 0, err
		}
		return Subtasks(tasks, byTask), nil
	case MethodHybrid:
		return Hybrid(&goal, tasks), nil
	default:
		return Simple(tasks), nil
	}
}

// UpdateGoalPercentage computes the percentage and persists it onto the
// goal's stored percentage field.
func UpdateGoalPercentage(db *gorm.DB, goalID uint, method Method) (float64, error) {
	pct, err := Compute(db, goalID, method)
	if err != nil {
		return 0, err
	}

	if err := db.Model(&models.Goal{}).Where("id = ?", goalID).
		Update("percentage", pct).Error; err != nil {
		return 0, err
	}
	return pct, nil
}

func loadSubtasks(db *gorm.DB, tasks []models.Task) (map[uint][]models.SubTask, error) {
	byTask := make(map[uint][]models.SubTask, len(tasks))
	if len(tasks) == 0 {
		return byTask, nil
	}

	ids := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	var subtasks []models.SubTask
	if err := db.Where("task_id IN ? AND deleted = ?", ids, false).Find(&subtasks).Error; err != nil {
		return nil, err
	}
	for _, st := range subtasks {
		byTask[st.TaskID] = append(byTask[st.TaskID], st)
	}
	return byTask, nil
}

// Details is the per-goal progress breakdown served by the task statistics
// endpoint.
type Details struct {
	GoalID                uint               `json:"goal_id"`
	GoalName              string             `json:"goal_name"`
	TotalTasks            int                `json:"total_tasks"`
	CompletedTasks        int                `json:"completed_tasks"`
	RemainingTasks        int                `json:"remaining_tasks"`
	HighPriorityTasks     int                `json:"high_priority_tasks"`
	HighPriorityCompleted int                `json:"high_priority_completed"`
	Percentages           map[string]float64 `json:"percentages"`
	TargetValue           *float64           `json:"target_value"`
	CurrentValue          float64            `json:"current_value"`
	Status                models.GoalStatus  `json:"status"`
}

// GoalProgressDetails evaluates every method for one goal.
func GoalProgressDetails(db *gorm.DB, goalID uint) (*Details, error) {
	var goal models.Goal
	if err := db.First(&goal, "id = ? AND deleted = ?", goalID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	var tasks []models.Task
	if err := db.Where("goal_id = ? AND deleted = ?", goalID, false).Find(&tasks).Error; err != nil {
		return nil, err
	}
	byTask, err := loadSubtasks(db, tasks)
	if err != nil {
		return nil, err
	}

	d := &Details{
		GoalID:       goal.ID,
		GoalName:     goal.Name,
		TotalTasks:   len(tasks),
		TargetValue:  goal.TargetValue,
		CurrentValue: goal.CurrentValue,
		Status:       goal.Status,
	}
	for _, t := range tasks {
		if t.Completed {
			d.CompletedTasks++
		}
		if strings.EqualFold(t.Priority, "high") {
			d.HighPriorityTasks++
			if t.Completed {
				d.HighPriorityCompleted++
			}
		}
	}
	d.RemainingTasks = d.TotalTasks - d.CompletedTasks
	d.Percentages = map[string]float64{
		"simple":        Simple(tasks),
		"weighted":      Weighted(tasks),
		"with_subtasks": Subtasks(tasks, byTask),
		"hybrid":        Hybrid(&goal, tasks),
		"stored":        goal.Percentage,
	}
	return d, nil
}
