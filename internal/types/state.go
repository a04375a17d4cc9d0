package types

import "time"

// AppState is everything a single user has on one device.
type AppState struct {
	ActiveMissionID string               `json:"active_mission_id,omitempty" yaml:"active_mission_id,omitempty"`
	Missions        map[string]Mission   `json:"missions" yaml:"missions"`
	TapTargets      map[string]TapTarget `json:"tap_targets" yaml:"tap_targets"`
}

// Active returns the active mission, if any.
func (s *AppState) Active() (Mission, bool) {
	if s.ActiveMissionID == "" {
		return Mission{}, false
	}
	m, ok := s.Missions[s.ActiveMissionID]
	return m, ok
}

// TapTarget is a counter goal, e.g. "100 push-ups", tracked by tapping.
type TapTarget struct {
	ID        string        `json:"id" yaml:"id"`
	Title     string        `json:"title" yaml:"title"`
	Target    int           `json:"target" yaml:"target"`
	Count     int           `json:"count" yaml:"count"`
	TotalTime time.Duration `json:"total_time,omitempty" yaml:"total_time,omitempty"`
}

// Done reports whether the counter reached its target.
func (t TapTarget) Done() bool {
	return t.Target > 0 && t.Count >= t.Target
}
