package engine

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

var testLoc = time.FixedZone("EST", -5*60*60)

func at(d types.Date, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, testLoc)
}

func day(y int, m time.Month, d int) types.Date {
	return types.NewDate(y, m, d)
}

// stableIDs makes rollover task ids predictable for the duration of a test.
func stableIDs(t *testing.T) {
	t.Helper()
	n := 0
	prev := newTaskID
	newTaskID = func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
	t.Cleanup(func() { newTaskID = prev })
}

func newTestMission(start types.Date, buffer int, habits ...string) types.Mission {
	return types.Mission{
		ID: "m-test",
		Config: types.MissionConfig{
			Name:             "Test",
			DurationDays:     30,
			DailyPointTarget: 50,
			StartDate:        start,
			DailyHabits:      habits,
			PenaltyType:      types.PenaltyRestart,
			BufferDays:       buffer,
			Frequency:        types.FrequencyDaily,
		},
		History:  map[types.Date]types.DayStatus{},
		DailyLog: map[types.Date][]types.CompletionRecord{},
	}
}

func TestReconcileMissionStartingToday(t *testing.T) {
	stableIDs(t)
	now := at(day(2024, 1, 1), 9, 0)

	m, err := NewMission(CreateMissionInput{
		Name:             "Deep Work",
		DurationDays:     30,
		DailyPointTarget: 50,
		DailyHabits:      []string{"Read", "Run"},
	}, now)
	if err != nil {
		t.Fatalf("NewMission: %v", err)
	}

	res := Reconcile(m, now)
	if res.Pending != nil {
		t.Fatalf("Pending=%+v, want none", res.Pending)
	}
	if !res.RolledOver {
		t.Fatalf("expected the first reconcile to roll over")
	}
	got := res.Mission
	if got.ScoreDate != day(2024, 1, 1) {
		t.Fatalf("ScoreDate=%s, want 2024-01-01", got.ScoreDate)
	}
	if len(got.Tasks) != 2 {
		t.Fatalf("len(tasks)=%d, want 2", len(got.Tasks))
	}
	for i, title := range []string{"Read", "Run"} {
		tk := got.Tasks[i]
		if tk.Title != title || tk.Priority != types.PriorityHigh || tk.Status != types.TaskPending {
			t.Fatalf("task %d = %+v, want pending high %q", i, tk, title)
		}
	}
	if len(got.History) != 0 {
		t.Fatalf("history=%v, want empty", got.History)
	}
	if m.ScoreDate != (types.Date{}) || len(m.Tasks) != 0 {
		t.Fatalf("input mission was modified")
	}
}

func TestReconcileMercyThenBreach(t *testing.T) {
	stableIDs(t)
	start := day(2024, 1, 1)
	now := at(start.AddDays(3), 10, 0)
	m := newTestMission(start, 2, "Read")

	// First call: day0 absorbed by a buffer day.
	r1 := Reconcile(m, now)
	if r1.Pending == nil || r1.Pending.Date != start || !r1.Pending.MercyApplied {
		t.Fatalf("call1 Pending=%+v, want mercy on %s", r1.Pending, start)
	}
	if got := r1.Mission.History[start]; got != types.DaySkipped {
		t.Fatalf("call1 history[day0]=%q, want skipped", got)
	}
	if r1.Mission.Config.BufferDays != 1 {
		t.Fatalf("call1 buffer=%d, want 1", r1.Mission.Config.BufferDays)
	}

	// Second call, same instant: day1 absorbed, buffer exhausted.
	r2 := Reconcile(r1.Mission, now)
	if r2.Pending == nil || r2.Pending.Date != start.AddDays(1) || !r2.Pending.MercyApplied {
		t.Fatalf("call2 Pending=%+v, want mercy on day1", r2.Pending)
	}
	if got := r2.Mission.History[start.AddDays(1)]; got != types.DaySkipped {
		t.Fatalf("call2 history[day1]=%q, want skipped", got)
	}
	if r2.Mission.Config.BufferDays != 0 {
		t.Fatalf("call2 buffer=%d, want 0", r2.Mission.Config.BufferDays)
	}
	if r2.RolledOver {
		t.Fatalf("call2 should not roll over again")
	}

	// Third call: day2 is a real breach and stays unset.
	r3 := Reconcile(r2.Mission, now)
	if r3.Pending == nil || r3.Pending.Date != start.AddDays(2) || r3.Pending.MercyApplied {
		t.Fatalf("call3 Pending=%+v, want unresolved breach on day2", r3.Pending)
	}
	if _, ok := r3.Mission.History[start.AddDays(2)]; ok {
		t.Fatalf("call3 must leave day2 unset")
	}
	if !r3.Mission.Blocked() {
		t.Fatalf("mission should be blocked by the breach")
	}

	// Repeating reports the same breach and changes nothing.
	r4 := Reconcile(r3.Mission, now)
	if !reflect.DeepEqual(r4.Mission, r3.Mission) {
		t.Fatalf("reconcile with a pending breach is not idempotent")
	}
	if r4.Pending == nil || *r4.Pending != *r3.Pending {
		t.Fatalf("call4 Pending=%+v, want %+v", r4.Pending, r3.Pending)
	}
}

func TestAcceptPenaltyThenContinue(t *testing.T) {
	stableIDs(t)
	start := day(2024, 1, 1)
	now := at(start.AddDays(3), 10, 0)
	m := newTestMission(start, 2, "Read")
	for i := 0; i < 3; i++ {
		m = Reconcile(m, now).Mission
	}
	day2 := start.AddDays(2)

	accepted := AcceptPenalty(m, day2)
	if got := accepted.History[day2]; got != types.DayFailed {
		t.Fatalf("history[day2]=%q, want failed", got)
	}
	if accepted.Pending != nil {
		t.Fatalf("Pending=%+v, want none", accepted.Pending)
	}

	later := Reconcile(accepted, at(start.AddDays(5), 8, 0))
	for d, want := range map[types.Date]types.DayStatus{
		start:            types.DaySkipped,
		start.AddDays(1): types.DaySkipped,
		day2:             types.DayFailed,
	} {
		if got := later.Mission.History[d]; got != want {
			t.Fatalf("history[%s]=%q, want %q", d, got, want)
		}
	}
	if later.Pending == nil || !later.Pending.Date.After(day2) {
		t.Fatalf("Pending=%+v, want a breach after %s", later.Pending, day2)
	}
	if later.Mission.Config.BufferDays != 0 {
		t.Fatalf("buffer=%d, want 0", later.Mission.Config.BufferDays)
	}
}

func TestReconcileWeekendsAreRest(t *testing.T) {
	stableIDs(t)
	mon := day(2024, 6, 3)
	if mon.Weekday() != time.Monday {
		t.Fatalf("fixture: %s is %s", mon, mon.Weekday())
	}
	m := newTestMission(mon, 2, "Ship")
	m.Config.Frequency = types.FrequencySelected
	m.Config.ScheduledWeekdays = []int{1, 2, 3, 4, 5}
	for i := 0; i < 5; i++ {
		m.History[mon.AddDays(i)] = types.DayCompleted
	}
	m.ScoreDate = mon.AddDays(4)

	res := Reconcile(m, at(mon.AddDays(7), 7, 0))
	if res.Pending != nil {
		t.Fatalf("Pending=%+v, want none across a weekend", res.Pending)
	}
	if res.Mission.Config.BufferDays != 2 {
		t.Fatalf("buffer=%d, want untouched 2", res.Mission.Config.BufferDays)
	}
	sat, sun := mon.AddDays(5), mon.AddDays(6)
	if res.Mission.History[sat] != types.DayRest || res.Mission.History[sun] != types.DayRest {
		t.Fatalf("weekend history=%q/%q, want rest/rest", res.Mission.History[sat], res.Mission.History[sun])
	}
	if !reflect.DeepEqual(res.RestDays, []types.Date{sat, sun}) {
		t.Fatalf("RestDays=%v, want [%s %s]", res.RestDays, sat, sun)
	}
}

func TestCompleteTaskMarksDayOnce(t *testing.T) {
	today := day(2024, 2, 1)
	now := at(today, 12, 0)
	m := newTestMission(today, 0)
	m.ScoreDate = today
	m.TodayScore = 40
	m.Tasks = []types.Task{
		{ID: "a", Title: "A", Priority: types.PriorityMedium, Status: types.TaskPending},
		{ID: "b", Title: "B", Priority: types.PriorityLow, Status: types.TaskPending},
	}

	m1, r1 := CompleteTask(m, "a", 15, now)
	if !r1.Applied || !r1.TargetReached || !r1.Celebrate {
		t.Fatalf("first completion result=%+v", r1)
	}
	if m1.TodayScore != 55 || m1.History[today] != types.DayCompleted {
		t.Fatalf("score=%d history=%q, want 55 completed", m1.TodayScore, m1.History[today])
	}
	if m1.Tasks[0].Status != types.TaskCompleted {
		t.Fatalf("task a status=%q, want completed", m1.Tasks[0].Status)
	}
	if len(m1.DailyLog[today]) != 1 || m1.DailyLog[today][0].Points != 15 {
		t.Fatalf("daily log=%+v", m1.DailyLog[today])
	}

	m2, r2 := CompleteTask(m1, "b", -10, now)
	if !r2.Applied || r2.TargetReached || r2.Celebrate {
		t.Fatalf("second completion result=%+v", r2)
	}
	if m2.TodayScore != 45 {
		t.Fatalf("score=%d, want 45", m2.TodayScore)
	}
	if m2.History[today] != types.DayCompleted {
		t.Fatalf("history[today]=%q, completed must not be unset", m2.History[today])
	}
	if len(m2.DailyLog[today]) != 2 {
		t.Fatalf("daily log has %d records, want 2", len(m2.DailyLog[today]))
	}
	if len(m1.DailyLog[today]) != 1 {
		t.Fatalf("CompleteTask modified its input")
	}
}

func TestCompleteTaskNoops(t *testing.T) {
	today := day(2024, 2, 1)
	now := at(today, 12, 0)
	base := newTestMission(today, 0)
	base.ScoreDate = today
	base.Tasks = []types.Task{
		{ID: "a", Title: "A", Priority: types.PriorityHigh, Status: types.TaskPending},
		{ID: "done", Title: "Done", Priority: types.PriorityHigh, Status: types.TaskCompleted},
	}

	blocked := base.Clone()
	blocked.Pending = &types.Breach{Date: today.AddDays(-1)}

	stale := base.Clone()
	stale.ScoreDate = today.AddDays(-1)

	tests := []struct {
		name string
		m    types.Mission
		id   string
		want SkipReason
	}{
		{name: "breach pending", m: blocked, id: "a", want: SkipBreachPending},
		{name: "rollover pending", m: stale, id: "a", want: SkipStaleDay},
		{name: "unknown task", m: base, id: "zzz", want: SkipUnknownTask},
		{name: "already done", m: base, id: "done", want: SkipAlreadyDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := CompleteTask(tt.m, tt.id, 10, now)
			if res.Applied || res.Skipped != tt.want {
				t.Fatalf("result=%+v, want skipped %q", res, tt.want)
			}
			if !reflect.DeepEqual(got, tt.m) {
				t.Fatalf("mission changed on a no-op")
			}
		})
	}

	// A mercy notification does not block input.
	mercy := base.Clone()
	mercy.Pending = &types.Breach{Date: today.AddDays(-1), MercyApplied: true}
	if _, res := CompleteTask(mercy, "a", 10, now); !res.Applied {
		t.Fatalf("mercy notification blocked completion: %+v", res)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	stableIDs(t)
	start := day(2024, 3, 1)
	m := newTestMission(start, 1, "Read")
	for i := 0; i < 4; i++ {
		m.History[start.AddDays(i)] = types.DayCompleted
	}
	m.ScoreDate = start.AddDays(3)
	now := at(start.AddDays(5), 9, 0)

	r1 := Reconcile(m, now)
	r2 := Reconcile(r1.Mission, now)
	if !reflect.DeepEqual(r1.Mission, r2.Mission) {
		t.Fatalf("second reconcile changed the mission:\n%+v\n%+v", r1.Mission, r2.Mission)
	}
	if r2.RolledOver || len(r2.RestDays) != 0 {
		t.Fatalf("second reconcile did work: %+v", r2)
	}
}

func TestReconcileBufferMonotonicOldestFirst(t *testing.T) {
	stableIDs(t)
	start := day(2024, 1, 1)
	today := start.AddDays(7)
	now := at(today, 9, 0)
	m := newTestMission(start, 2)

	prevBuffer := m.Config.BufferDays
	for i := 0; i < 12; i++ {
		res := Reconcile(m, now)
		buf := res.Mission.Config.BufferDays
		if buf > prevBuffer || buf < 0 {
			t.Fatalf("iteration %d: buffer went %d -> %d", i, prevBuffer, buf)
		}
		if prevBuffer-buf > 1 {
			t.Fatalf("iteration %d: more than one buffer day used in one call", i)
		}
		prevBuffer = buf

		if res.Pending != nil {
			// The reported date is the oldest evaluable gap.
			for d := start; d.Before(res.Pending.Date); d = d.AddDays(1) {
				if _, ok := res.Mission.History[d]; !ok && d != m.ScoreDate {
					t.Fatalf("iteration %d: breach %s reported while %s is still unset", i, res.Pending.Date, d)
				}
			}
		}
		m = res.Mission
		if m.Blocked() {
			m = AcceptPenalty(m, m.Pending.Date)
		}
	}

	if got := CountStatus(m, types.DaySkipped); got != 2 {
		t.Fatalf("skipped=%d, want 2", got)
	}
	for d := start; d.Before(today); d = d.AddDays(1) {
		if _, ok := m.History[d]; !ok {
			t.Fatalf("history[%s] still unset after resolving every breach", d)
		}
	}
}

func TestFinalStatusesAreNeverOverwritten(t *testing.T) {
	stableIDs(t)
	start := day(2024, 4, 1)
	m := newTestMission(start, 3)
	m.History[start] = types.DayCompleted
	m.History[start.AddDays(1)] = types.DayFailed
	m.History[start.AddDays(2)] = types.DaySkipped

	res := Reconcile(m, at(start.AddDays(4), 9, 0))
	for d, want := range m.History {
		if got := res.Mission.History[d]; got != want {
			t.Fatalf("history[%s]=%q, want %q", d, got, want)
		}
	}

	// Accepting a penalty for a day that already has a status does nothing.
	if got := AcceptPenalty(res.Mission, start); !reflect.DeepEqual(got, res.Mission) {
		t.Fatalf("AcceptPenalty touched a resolved day")
	}
}

func TestReconcileFutureStartIsNoop(t *testing.T) {
	today := day(2024, 5, 1)
	m := newTestMission(today.AddDays(2), 1, "Read")

	res := Reconcile(m, at(today, 9, 0))
	if res.RolledOver || res.Pending != nil || len(res.RestDays) != 0 {
		t.Fatalf("future mission reconciled: %+v", res)
	}
	if !reflect.DeepEqual(res.Mission, m) {
		t.Fatalf("future mission changed")
	}
}

func TestRolloverCarriesPendingTasks(t *testing.T) {
	stableIDs(t)
	start := day(2024, 1, 1)
	m := newTestMission(start, 0, "Habit")
	m.History[start] = types.DayCompleted
	m.ScoreDate = start
	m.TodayScore = 70
	m.Tasks = []types.Task{
		{ID: "old-done", Title: "Done", Priority: types.PriorityHigh, Status: types.TaskCompleted},
		{ID: "old-pending", Title: "Left over", Priority: types.PriorityLow, Status: types.TaskPending},
	}

	res := Reconcile(m, at(start.AddDays(1), 6, 0))
	got := res.Mission
	if got.TodayScore != 0 || got.ScoreDate != start.AddDays(1) {
		t.Fatalf("score=%d scoreDate=%s, want reset to the new day", got.TodayScore, got.ScoreDate)
	}
	if len(got.Tasks) != 2 || got.Tasks[0].Title != "Habit" || got.Tasks[1].ID != "old-pending" {
		t.Fatalf("tasks=%+v, want [Habit, Left over]", got.Tasks)
	}
}

func TestRolloverOnRestDayKeepsTasks(t *testing.T) {
	fri := day(2024, 6, 7)
	m := newTestMission(fri, 0, "Ship")
	m.Config.Frequency = types.FrequencySelected
	m.Config.ScheduledWeekdays = []int{5}
	m.ScoreDate = fri
	m.History[fri] = types.DayCompleted
	m.TodayScore = 60
	m.Tasks = []types.Task{{ID: "p", Title: "Pending", Priority: types.PriorityHigh, Status: types.TaskPending}}

	res := Reconcile(m, at(fri.AddDays(1), 10, 0))
	if !res.RolledOver || res.Mission.TodayScore != 0 {
		t.Fatalf("rest day did not reset the score: %+v", res)
	}
	if !reflect.DeepEqual(res.Mission.Tasks, m.Tasks) {
		t.Fatalf("tasks=%+v, want unchanged on a rest day", res.Mission.Tasks)
	}
}

func TestReconcileUsesLocalMidnight(t *testing.T) {
	stableIDs(t)
	d := day(2024, 3, 10)
	m := newTestMission(d, 0, "Read")

	// 23:30 in EST is already the 11th in UTC.
	late := time.Date(2024, 3, 10, 23, 30, 0, 0, testLoc)
	res := Reconcile(m, late)
	if res.Mission.ScoreDate != d {
		t.Fatalf("ScoreDate=%s, want %s", res.Mission.ScoreDate, d)
	}

	// Just after local midnight a new day starts. The day the score was kept
	// for is not judged until the rollover has moved past it.
	res = Reconcile(res.Mission, time.Date(2024, 3, 11, 0, 5, 0, 0, testLoc))
	if res.Mission.ScoreDate != d.AddDays(1) || !res.RolledOver {
		t.Fatalf("ScoreDate=%s rolled=%v, want rollover to %s", res.Mission.ScoreDate, res.RolledOver, d.AddDays(1))
	}
	if res.Pending != nil {
		t.Fatalf("Pending=%+v, want none on the first call of the new day", res.Pending)
	}
	res = Reconcile(res.Mission, time.Date(2024, 3, 11, 0, 6, 0, 0, testLoc))
	if res.Pending == nil || res.Pending.Date != d {
		t.Fatalf("Pending=%+v, want breach on %s", res.Pending, d)
	}
}

func TestRestartAndAcknowledge(t *testing.T) {
	start := day(2024, 1, 1)
	now := at(start.AddDays(5), 9, 0)
	m := newTestMission(start, 1, "Read")
	m.History[start] = types.DaySkipped
	m.Config.BufferDays = 0
	m.Tasks = []types.Task{{ID: "x", Title: "Read", Priority: types.PriorityHigh, Status: types.TaskPending}}
	m.DailyLog[start] = []types.CompletionRecord{{Title: "Read", Points: 10}}
	m.TodayScore = 10
	m.ScoreDate = start.AddDays(5)

	// Without a breach, restart is refused.
	if got := Restart(m, now); !reflect.DeepEqual(got, m) {
		t.Fatalf("Restart without a breach changed the mission")
	}

	m.Pending = &types.Breach{Date: start.AddDays(1)}
	r := Restart(m, now)
	if r.Config.StartDate != start.AddDays(5) {
		t.Fatalf("StartDate=%s, want today", r.Config.StartDate)
	}
	if len(r.Tasks) != 0 || len(r.History) != 0 || len(r.DailyLog) != 0 || r.TodayScore != 0 {
		t.Fatalf("restart left progress behind: %+v", r)
	}
	if r.Pending != nil || !r.ScoreDate.IsZero() {
		t.Fatalf("Pending=%v ScoreDate=%s, want cleared", r.Pending, r.ScoreDate)
	}
	if r.Config.BufferDays != 0 || r.Config.Name != m.Config.Name {
		t.Fatalf("config changed: %+v", r.Config)
	}

	// AcknowledgeMercy only dismisses mercy notifications.
	if got := AcknowledgeMercy(m); got.Pending == nil {
		t.Fatalf("AcknowledgeMercy dismissed an unresolved breach")
	}
	m.Pending = &types.Breach{Date: start, MercyApplied: true}
	if got := AcknowledgeMercy(m); got.Pending != nil {
		t.Fatalf("mercy notification not dismissed")
	}

	// AcceptPenalty needs the matching date.
	m.Pending = &types.Breach{Date: start.AddDays(1)}
	if got := AcceptPenalty(m, start.AddDays(2)); got.Pending == nil {
		t.Fatalf("AcceptPenalty with the wrong date resolved the breach")
	}
}

func TestNewMissionValidation(t *testing.T) {
	now := at(day(2024, 1, 1), 9, 0)
	valid := CreateMissionInput{Name: "X", DurationDays: 10, DailyPointTarget: 10}

	tests := []struct {
		name   string
		mutate func(*CreateMissionInput)
		field  string
	}{
		{name: "missing name", mutate: func(in *CreateMissionInput) { in.Name = "  " }, field: "name"},
		{name: "zero duration", mutate: func(in *CreateMissionInput) { in.DurationDays = 0 }, field: "duration"},
		{name: "too long", mutate: func(in *CreateMissionInput) { in.DurationDays = MaxDurationDays + 1 }, field: "duration"},
		{name: "zero target", mutate: func(in *CreateMissionInput) { in.DailyPointTarget = 0 }, field: "target"},
		{name: "negative buffer", mutate: func(in *CreateMissionInput) { in.BufferDays = -1 }, field: "buffer"},
		{name: "bad penalty", mutate: func(in *CreateMissionInput) { in.PenaltyType = "jail" }, field: "penalty"},
		{name: "no weekdays", mutate: func(in *CreateMissionInput) { in.Frequency = types.FrequencySelected }, field: "days"},
		{name: "weekday out of range", mutate: func(in *CreateMissionInput) {
			in.Frequency = types.FrequencySelected
			in.ScheduledWeekdays = []int{7}
		}, field: "days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := NewMission(in, now)
			if err == nil {
				t.Fatalf("expected an error")
			}
			ve, ok := err.(ValidationError)
			if !ok || ve.Field != tt.field {
				t.Fatalf("err=%v, want ValidationError on %q", err, tt.field)
			}
		})
	}

	m, err := NewMission(CreateMissionInput{
		Name:              " Gym ",
		DurationDays:      20,
		DailyPointTarget:  30,
		DailyHabits:       []string{"Lift", " Lift", ""},
		Frequency:         types.FrequencySelected,
		ScheduledWeekdays: []int{5, 1, 5},
	}, now)
	if err != nil {
		t.Fatalf("NewMission: %v", err)
	}
	if m.Config.Name != "Gym" || m.Config.StartDate != day(2024, 1, 1) {
		t.Fatalf("config=%+v", m.Config)
	}
	if !reflect.DeepEqual(m.Config.DailyHabits, []string{"Lift"}) || !reflect.DeepEqual(m.Config.ScheduledWeekdays, []int{1, 5}) {
		t.Fatalf("habits=%v weekdays=%v", m.Config.DailyHabits, m.Config.ScheduledWeekdays)
	}
	if m.Config.PenaltyType != types.PenaltyRestart || m.ID == "" {
		t.Fatalf("defaults not applied: %+v", m)
	}
}

func TestAddTaskAndUpdateConfig(t *testing.T) {
	stableIDs(t)
	m := newTestMission(day(2024, 1, 1), 2, "Read")
	m.Tasks = []types.Task{{ID: "old", Title: "Old", Priority: types.PriorityLow, Status: types.TaskPending}}

	m1, task, err := AddTask(m, AddTaskInput{Title: "Stretch"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if m1.Tasks[0].ID != task.ID || task.Priority != types.PriorityHigh {
		t.Fatalf("task not prepended as high priority: %+v", m1.Tasks)
	}
	if !reflect.DeepEqual(m1.Config.DailyHabits, []string{"Read", "Stretch"}) {
		t.Fatalf("habits=%v", m1.Config.DailyHabits)
	}

	m2, _, err := AddTask(m1, AddTaskInput{Title: "Call mom", Priority: types.PriorityMedium, Once: true})
	if err != nil {
		t.Fatalf("AddTask once: %v", err)
	}
	if len(m2.Config.DailyHabits) != 2 || len(m2.Tasks) != 3 {
		t.Fatalf("once task changed habits: %v", m2.Config.DailyHabits)
	}
	if _, _, err := AddTask(m2, AddTaskInput{Title: " "}); err == nil {
		t.Fatalf("expected an error for an empty title")
	}

	name, target := "Renamed", 80
	m3, err := UpdateConfig(m2, ConfigPatch{
		Name:             &name,
		DailyPointTarget: &target,
		RemoveHabits:     []string{"Read"},
		AddHabits:        []string{"Journal"},
	})
	if err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}
	if m3.Config.Name != "Renamed" || m3.Config.DailyPointTarget != 80 {
		t.Fatalf("config=%+v", m3.Config)
	}
	if !reflect.DeepEqual(m3.Config.DailyHabits, []string{"Stretch", "Journal"}) {
		t.Fatalf("habits=%v", m3.Config.DailyHabits)
	}
	if m3.Config.BufferDays != 2 {
		t.Fatalf("buffer=%d, edits must not touch it", m3.Config.BufferDays)
	}
	zero := 0
	if _, err := UpdateConfig(m3, ConfigPatch{DailyPointTarget: &zero}); err == nil {
		t.Fatalf("expected an error for a zero target")
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "mon,wed,fri", want: []int{1, 3, 5}},
		{in: "Weekdays", want: []int{1, 2, 3, 4, 5}},
		{in: "weekends", want: []int{0, 6}},
		{in: "5, 1,1", want: []int{1, 5}},
		{in: "sunday,6", want: []int{0, 6}},
		{in: "funday", wantErr: true},
		{in: "7", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseWeekdays(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseWeekdays(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseWeekdays(%q): %v", tt.in, err)
		}
		if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
			t.Fatalf("ParseWeekdays(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsScheduledAndNext(t *testing.T) {
	cfg := types.MissionConfig{Frequency: types.FrequencySelected, ScheduledWeekdays: []int{1, 3}}
	mon := day(2024, 6, 3)
	if !IsScheduled(cfg, mon) || IsScheduled(cfg, mon.AddDays(1)) {
		t.Fatalf("IsScheduled wrong for mon/tue")
	}
	if got := NextScheduledDate(cfg, mon); got != mon.AddDays(2) {
		t.Fatalf("NextScheduledDate=%s, want wednesday", got)
	}
	daily := types.MissionConfig{Frequency: types.FrequencyDaily, ScheduledWeekdays: []int{1}}
	if !IsScheduled(daily, mon.AddDays(1)) {
		t.Fatalf("daily missions ignore the weekday set")
	}
}

func TestProgress(t *testing.T) {
	start := day(2024, 1, 1)
	m := newTestMission(start, 0)
	m.Config.DurationDays = 10

	p := Progress(m, at(start.AddDays(2), 18, 0))
	if !p.Started || p.DayNumber != 3 || p.DaysRemaining != 7 || p.Finished {
		t.Fatalf("progress=%+v", p)
	}
	if p.TimeLeftToday != 6*time.Hour {
		t.Fatalf("TimeLeftToday=%s, want 6h", p.TimeLeftToday)
	}

	if p := Progress(m, at(start.AddDays(-1), 9, 0)); p.Started || p.DayNumber != 0 {
		t.Fatalf("before start progress=%+v", p)
	}
	if p := Progress(m, at(start.AddDays(10), 9, 0)); !p.Finished {
		t.Fatalf("after end progress=%+v", p)
	}
}

func TestStreaks(t *testing.T) {
	start := day(2024, 1, 1)
	m := newTestMission(start, 0)
	statuses := []types.DayStatus{
		types.DayCompleted, types.DayCompleted, types.DayRest, types.DayCompleted,
		types.DayFailed, types.DayCompleted,
	}
	for i, s := range statuses {
		m.History[start.AddDays(i)] = s
	}

	got := Streaks(m, at(start.AddDays(6), 9, 0))
	if got.Current != 1 || got.Best != 3 {
		t.Fatalf("streak=%+v, want current 1 best 3", got)
	}

	// An unresolved past day breaks the streak.
	got = Streaks(m, at(start.AddDays(7), 9, 0))
	if got.Current != 0 {
		t.Fatalf("current=%d, want 0 after a missed day", got.Current)
	}
}

func TestSummarizeAndAchievements(t *testing.T) {
	start := day(2024, 1, 1)
	now := at(start.AddDays(7), 9, 0)

	a := newTestMission(start, 0)
	a.ID = "a"
	for i := 0; i < 7; i++ {
		d := start.AddDays(i)
		a.History[d] = types.DayCompleted
		a.DailyLog[d] = []types.CompletionRecord{{Title: "Read", Points: 50}}
	}
	a.DailyLog[start.AddDays(7)] = []types.CompletionRecord{{Title: "Read", Points: 10}}

	b := newTestMission(start, 0)
	b.ID = "b"
	b.Pending = &types.Breach{Date: start}

	state := types.AppState{
		ActiveMissionID: "a",
		Missions:        map[string]types.Mission{"a": a, "b": b},
		TapTargets: map[string]types.TapTarget{
			"t1": {ID: "t1", Title: "Push-ups", Target: 10, Count: 10},
			"t2": {ID: "t2", Title: "Squats", Target: 10, Count: 3},
		},
	}
	s := Summarize(state, now)
	want := Summary{
		Missions:       2,
		DueToday:       2,
		TotalPoints:    360,
		TodayPoints:    10,
		CompletedDays:  7,
		CurrentStreak:  7,
		BestStreak:     7,
		OpenBreaches:   1,
		TapTargets:     2,
		TapTargetsDone: 1,
	}
	if s != want {
		t.Fatalf("summary=%+v\nwant   %+v", s, want)
	}

	earned := map[string]bool{}
	for _, ach := range Achievements(a, now) {
		earned[ach.ID] = ach.Earned
	}
	for id, want := range map[string]bool{
		"first_day":    true,
		"ten_days":     false,
		"week_streak":  true,
		"habit_formed": false,
		"centurion":    true,
		"iron_will":    true,
		"finisher":     false,
	} {
		if earned[id] != want {
			t.Fatalf("achievement %s earned=%v, want %v", id, earned[id], want)
		}
	}
	if n := NewAchievementChecker(a, now).CountEarned(); n != 4 {
		t.Fatalf("CountEarned=%d, want 4", n)
	}
}

func TestTemplatesBuildValidMissions(t *testing.T) {
	now := at(day(2024, 1, 1), 9, 0)
	for _, def := range Templates() {
		if _, err := NewMission(def.Input, now); err != nil {
			t.Fatalf("template %s: %v", def.Code, err)
		}
	}
	if def, err := TemplateByCode(" MONK-MODE "); err != nil || def.Code != "monk-mode" {
		t.Fatalf("TemplateByCode: def=%v err=%v", def, err)
	}
	if _, err := TemplateByCode("nope"); err == nil {
		t.Fatalf("expected unknown template error")
	}
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		in     string
		points int
	}{
		{in: "", points: 10},
		{in: "f", points: -15},
		{in: "Better", points: 25},
		{in: "best", points: 50},
	}
	for _, tt := range tests {
		g, err := ParseGrade(tt.in)
		if err != nil {
			t.Fatalf("ParseGrade(%q): %v", tt.in, err)
		}
		if g.Points() != tt.points {
			t.Fatalf("ParseGrade(%q).Points()=%d, want %d", tt.in, g.Points(), tt.points)
		}
	}
	if _, err := ParseGrade("meh"); err == nil {
		t.Fatalf("expected an error for an unknown grade")
	}
}
