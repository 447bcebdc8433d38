package display

import "sync"

// Recorder is a Sink that keeps everything it is shown. Safe for
// concurrent use.
type Recorder struct {
	mu            sync.Mutex
	statuses      map[string]Label
	notices       map[string][]Notice
	announcements []Announcement
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		statuses: make(map[string]Label),
		notices:  make(map[string][]Notice),
	}
}

func (r *Recorder) ShowStatus(playerID string, label Label) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[playerID] = label
}

func (r *Recorder) ShowNotice(playerID string, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices[playerID] = append(r.notices[playerID], notice)
}

func (r *Recorder) Announce(announcement Announcement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.announcements = append(r.announcements, announcement)
}

// Status returns the latest overlay shown to a player
func (r *Recorder) Status(playerID string) (Label, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	label, ok := r.statuses[playerID]
	return label, ok
}

// Notices returns every notice shown to a player
func (r *Recorder) Notices(playerID string) []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices[playerID]...)
}

// Announcements returns every broadcast so far
func (r *Recorder) Announcements() []Announcement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Announcement(nil), r.announcements...)
}
