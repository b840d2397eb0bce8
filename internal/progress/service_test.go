package progress

import (
	"testing"

	"lifetrack-backend/internal/models"
)

func task(id uint, priority string, completed bool) models.Task {
	return models.Task{ID: id, Priority: priority, Completed: completed}
}

func fptr(v float64) *float64 { return &v }

func TestSimple(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  float64
	}{
		{"no tasks", nil, 0.0},
		{"none completed", []models.Task{task(1, "medium", false), task(2, "medium", false)}, 0.0},
		{"half completed", []models.Task{task(1, "medium", true), task(2, "medium", false)}, 50.0},
		{"all completed", []models.Task{task(1, "medium", true)}, 100.0},
		{"one of three", []models.Task{task(1, "low", true), task(2, "low", false), task(3, "low", false)}, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simple(tt.tasks); got != tt.want {
				t.Errorf("Simple() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeighted(t *testing.T) {
	// high=3, medium=2, low=1: completing the high task alone is 3/6
	tasks := []models.Task{
		task(1, "high", true),
		task(2, "medium", false),
		task(3, "low", false),
	}
	if got := Weighted(tasks); got != 50.0 {
		t.Errorf("Weighted() = %v, want 50.0", got)
	}
}

func TestWeighted_UnknownPriorityCountsAsOne(t *testing.T) {
	tasks := []models.Task{
		task(1, "urgent", true), // unknown priority, weight 1
		task(2, "high", false),
	}
	if got := Weighted(tasks); got != 25.0 {
		t.Errorf("Weighted() = %v, want 25.0", got)
	}
}

func TestWeighted_NoTasks(t *testing.T) {
	if got := Weighted(nil); got != 0.0 {
		t.Errorf("Weighted(nil) = %v, want 0.0", got)
	}
}

func TestSubtasks(t *testing.T) {
	tasks := []models.Task{task(1, "medium", true), task(2, "medium", false)}
	byTask := map[uint][]models.SubTask{
		1: {
			{ID: 10, TaskID: 1, Completed: true},
			{ID: 11, TaskID: 1, Completed: false},
		},
		// task 2 has no subtasks and must contribute nothing
	}

	if got := Subtasks(tasks, byTask); got != 50.0 {
		t.Errorf("Subtasks() = %v, want 50.0", got)
	}
}

func TestSubtasks_NoSubtasksAnywhere(t *testing.T) {
	tasks := []models.Task{task(1, "medium", true)}
	if got := Subtasks(tasks, map[uint][]models.SubTask{}); got != 0.0 {
		t.Errorf("Subtasks() = %v, want 0.0", got)
	}
}

func TestHybrid_TargetValue(t *testing.T) {
	tests := []struct {
		name    string
		target  *float64
		current float64
		tasks   []models.Task
		want    float64
	}{
		{"ielts scenario", fptr(6.5), 5.5, nil, 84.62},
		{"ielts updated", fptr(6.5), 6.0, nil, 92.31},
		{"clamped at 100", fptr(10), 12, nil, 100.0},
		{"exact target", fptr(10), 10, nil, 100.0},
		{"target ignores tasks", fptr(4), 1, []models.Task{task(1, "medium", true)}, 25.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &models.Goal{TargetValue: tt.target, CurrentValue: tt.current}
			if got := Hybrid(goal, tt.tasks); got != tt.want {
				t.Errorf("Hybrid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHybrid_FallsBackToSimple(t *testing.T) {
	goal := &models.Goal{CurrentValue: 5} // no target_value
	tasks := []models.Task{task(1, "medium", true), task(2, "medium", false)}

	if got := Hybrid(goal, tasks); got != 50.0 {
		t.Errorf("Hybrid() = %v, want 50.0", got)
	}

	zero := 0.0
	goal.TargetValue = &zero // target of 0 also falls back
	if got := Hybrid(goal, tasks); got != 50.0 {
		t.Errorf("Hybrid() with zero target = %v, want 50.0", got)
	}
}

// Deleting the one incomplete task of a 1/2 goal leaves 1/1 done.
func TestSimple_AfterTaskRemoval(t *testing.T) {
	before := []models.Task{task(1, "medium", true), task(2, "medium", false)}
	if got := Simple(before); got != 50.0 {
		t.Fatalf("Simple(before) = %v, want 50.0", got)
	}

	after := before[:1]
	if got := Simple(after); got != 100.0 {
		t.Errorf("Simple(after) = %v, want 100.0", got)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"simple", MethodSimple},
		{"weighted", MethodWeighted},
		{"subtasks", MethodSubtasks},
		{"hybrid", MethodHybrid},
		{"HYBRID", MethodHybrid},
		{"", MethodSimple},
		{"bogus", MethodSimple},
	}
	for _, tt := range tests {
		if got := ParseMethod(tt.in); got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
