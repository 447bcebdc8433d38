package match

import "time"

// Task is a callback scheduled for a later tick
type Task struct {
	due       time.Time
	fn        func(now time.Time)
	cancelled bool
	done      bool
}

// Due returns when the task becomes runnable
func (t *Task) Due() time.Time {
	return t.due
}

// Cancel prevents the task from running. It returns false if the task has
// already run or was cancelled before.
func (t *Task) Cancel() bool {
	if t == nil || t.cancelled || t.done {
		return false
	}
	t.cancelled = true
	return true
}

// Pending reports whether the task is still waiting to run
func (t *Task) Pending() bool {
	return t != nil && !t.cancelled && !t.done
}

// Scheduler runs deferred callbacks from the owner's tick, so callbacks
// execute on the same thread of control as every other mutation.
type Scheduler struct {
	tasks []*Task
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run on the first RunDue at or past now+d
func (s *Scheduler) After(now time.Time, d time.Duration, fn func(now time.Time)) *Task {
	task := &Task{due: now.Add(d), fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// RunDue runs every task whose time has come, in scheduling order
func (s *Scheduler) RunDue(now time.Time) int {
	ran := 0
	remaining := s.tasks[:0]
	var due []*Task
	for _, task := range s.tasks {
		switch {
		case task.cancelled:
		case now.Before(task.due):
			remaining = append(remaining, task)
		default:
			due = append(due, task)
		}
	}
	s.tasks = remaining

	for _, task := range due {
		if task.cancelled {
			continue
		}
		task.done = true
		task.fn(now)
		ran++
	}
	return ran
}

// Len returns the number of tasks still waiting
func (s *Scheduler) Len() int {
	n := 0
	for _, task := range s.tasks {
		if task.Pending() {
			n++
		}
	}
	return n
}
