package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

// SkipReason explains why CompleteTask left the mission unchanged.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipBreachPending SkipReason = "breach_pending"
	SkipUnknownTask   SkipReason = "unknown_task"
	SkipAlreadyDone   SkipReason = "already_done"
	SkipStaleDay      SkipReason = "rollover_pending"
)

type CompleteResult struct {
	Applied    bool
	Skipped    SkipReason
	Task       types.Task
	ScoreAfter int

	// TargetReached is true only on the completion that marked today completed.
	TargetReached bool

	// Celebrate is the UI cue: a high-priority task was finished or the target was crossed.
	Celebrate bool
}

// CompleteTask records points for a task on today's list.
//
// Stale or blocked calls are no-ops: an unresolved breach, an unknown or
// already completed task, and a mission whose rollover has not run for
// today all return the mission unchanged.
func CompleteTask(m types.Mission, taskID string, points int, now time.Time) (types.Mission, CompleteResult) {
	today := types.DateOf(now)

	if m.Blocked() {
		return m, CompleteResult{Skipped: SkipBreachPending}
	}
	if m.ScoreDate != today {
		return m, CompleteResult{Skipped: SkipStaleDay}
	}
	idx := m.FindTask(taskID)
	if idx < 0 {
		return m, CompleteResult{Skipped: SkipUnknownTask}
	}
	if m.Tasks[idx].Status == types.TaskCompleted {
		return m, CompleteResult{Skipped: SkipAlreadyDone, Task: m.Tasks[idx]}
	}

	out := m.Clone()
	task := out.Tasks[idx]
	task.Status = types.TaskCompleted
	out.Tasks[idx] = task

	out.DailyLog[today] = append(out.DailyLog[today], types.CompletionRecord{
		Title:     task.Title,
		Points:    points,
		Timestamp: now,
		Priority:  task.Priority,
	})

	before := out.TodayScore
	out.TodayScore += points

	target := out.Config.DailyPointTarget
	crossed := before < target && out.TodayScore >= target
	marked := false
	if crossed {
		if _, ok := out.History[today]; !ok {
			out.History[today] = types.DayCompleted
			marked = true
		}
	}

	return out, CompleteResult{
		Applied:       true,
		Task:          task,
		ScoreAfter:    out.TodayScore,
		TargetReached: marked,
		Celebrate:     crossed || task.Priority == types.PriorityHigh,
	}
}

// Grade is the quick score a user picks when finishing a task.
type Grade string

const (
	GradeFail   Grade = "fail"
	GradeGood   Grade = "good"
	GradeBetter Grade = "better"
	GradeBest   Grade = "best"
)

var gradePoints = map[Grade]int{
	GradeFail:   -15,
	GradeGood:   10,
	GradeBetter: 25,
	GradeBest:   50,
}

// Grades lists the grades from worst to best.
func Grades() []Grade {
	return []Grade{GradeFail, GradeGood, GradeBetter, GradeBest}
}

func (g Grade) Points() int { return gradePoints[g] }

// ParseGrade accepts a grade name or its first letter; empty means good.
func ParseGrade(input string) (Grade, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "":
		return GradeGood, nil
	case "f":
		return GradeFail, nil
	case "g":
		return GradeGood, nil
	case "b":
		return GradeBetter, nil
	case "x":
		return GradeBest, nil
	}
	g := Grade(s)
	if _, ok := gradePoints[g]; !ok {
		return "", ValidationError{Field: "grade", Reason: fmt.Sprintf("unknown grade %q (want fail, good, better or best)", input)}
	}
	return g, nil
}
