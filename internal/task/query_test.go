package task

import (
	"slices"
	"testing"
	"time"
)

func sampleTasks() []Task {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return []Task{
		{ID: NewID(), Text: "Buy milk", Priority: PriorityLow, Category: CategoryShopping, CreatedAt: now},
		{ID: NewID(), Text: "Write report", Priority: PriorityHigh, Category: CategoryWork, CreatedAt: now},
	}
}

func texts(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestApplyScenario(t *testing.T) {
	got := Apply(sampleTasks(), Filter{Category: All, Priority: PriorityHigh})
	if len(got) != 1 || got[0].Text != "Write report" {
		t.Errorf("Expected [Write report], got %v", texts(got))
	}
}

func TestApplyIdentity(t *testing.T) {
	tasks := sampleTasks()
	for _, f := range []Filter{{}, {Category: All, Priority: All}} {
		got := Apply(tasks, f)
		if !slices.Equal(got, tasks) {
			t.Errorf("Apply(%+v) = %v, want full list in order", f, texts(got))
		}
	}
}

func TestApply(t *testing.T) {
	now := time.Now()
	tasks := []Task{
		{ID: NewID(), Text: "Call Mom", Priority: PriorityMedium, Category: CategoryPersonal, CreatedAt: now},
		{ID: NewID(), Text: "Gym session", Priority: PriorityHigh, Category: CategoryHealth, CreatedAt: now},
		{ID: NewID(), Text: "Read chapter 4", Priority: PriorityLow, Category: CategoryStudy, CreatedAt: now},
		{ID: NewID(), Text: "call plumber", Priority: PriorityHigh, Category: CategoryPersonal, CreatedAt: now},
		{ID: NewID(), Text: "Buy protein", Priority: PriorityHigh, Category: CategoryShopping, CreatedAt: now},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "search is case-insensitive substring",
			filter: Filter{Search: "CALL"},
			want:   []string{"Call Mom", "call plumber"},
		},
		{
			name:   "search matches mid-word",
			filter: Filter{Search: "ess"},
			want:   []string{"Gym session"},
		},
		{
			name:   "category only",
			filter: Filter{Category: CategoryPersonal, Priority: All},
			want:   []string{"Call Mom", "call plumber"},
		},
		{
			name:   "priority only keeps order",
			filter: Filter{Priority: PriorityHigh},
			want:   []string{"Gym session", "call plumber", "Buy protein"},
		},
		{
			name:   "all three conjunctive",
			filter: Filter{Search: "call", Category: CategoryPersonal, Priority: PriorityHigh},
			want:   []string{"call plumber"},
		},
		{
			name:   "no match",
			filter: Filter{Search: "zzz"},
			want:   []string{},
		},
		{
			name:   "category with no tasks",
			filter: Filter{Category: CategoryWork},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Apply(tasks, tt.filter))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyEmptyList(t *testing.T) {
	if got := Apply(nil, Filter{Search: "x"}); len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestFilterActive(t *testing.T) {
	if (Filter{}).Active() {
		t.Error("Zero filter should be inactive")
	}
	if (Filter{Category: All, Priority: All}).Active() {
		t.Error("all/all filter should be inactive")
	}
	if !(Filter{Search: "x"}).Active() {
		t.Error("Search filter should be active")
	}
	if !(Filter{Priority: PriorityLow}).Active() {
		t.Error("Priority filter should be active")
	}
}

func TestSummarizeScenario(t *testing.T) {
	got := Summarize(sampleTasks())
	want := Stats{Total: 2, Completed: 0, Pending: 2, HighPriority: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	tasks := []Task{
		{Text: "a", Priority: PriorityHigh, Completed: true},
		{Text: "b", Priority: PriorityHigh},
		{Text: "c", Priority: PriorityLow, Completed: true},
		{Text: "d", Priority: PriorityMedium},
		{Text: "e", Priority: PriorityHigh},
	}
	got := Summarize(tasks)
	want := Stats{Total: 5, Completed: 2, Pending: 3, HighPriority: 2}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if got.Completed+got.Pending != got.Total {
		t.Errorf("completed + pending != total: %+v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (Stats{}) {
		t.Errorf("Expected zero stats, got %+v", got)
	}
}
