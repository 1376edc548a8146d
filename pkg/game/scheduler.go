package game

import "time"

type task struct {
	due time.Time
	fn  func()
}

// Scheduler holds deferred tasks for the goroutine that owns a session.
// Tasks are never cancelled; each runs once, on the first Run at or after
// its due time.
type Scheduler struct {
	tasks []task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) After(now time.Time, d time.Duration, fn func()) {
	t := task{due: now.Add(d), fn: fn}

	i := len(s.tasks)
	for i > 0 && s.tasks[i-1].due.After(t.due) {
		i--
	}

	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// Run executes every task due at now, earliest first, and returns how many
// ran. Tasks scheduled by a running task wait for the next Run.
func (s *Scheduler) Run(now time.Time) int {
	n := 0
	for n < len(s.tasks) && !s.tasks[n].due.After(now) {
		n++
	}

	if n == 0 {
		return 0
	}

	due := make([]task, n)
	copy(due, s.tasks[:n])
	s.tasks = append(s.tasks[:0], s.tasks[n:]...)

	for _, t := range due {
		t.fn()
	}

	return n
}

func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
