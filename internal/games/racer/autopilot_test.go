package racer

import "testing"

func TestAutopilotSteer(t *testing.T) {
	f := NewField(quietConfig().Field)
	pilot := NewAutopilot(f)

	tests := []struct {
		name     string
		lane     int
		entities []Entity
		want     Input
	}{
		{
			name: "clear road",
			lane: 1,
			want: Input{},
		},
		{
			name:     "reward ahead is not a threat",
			lane:     1,
			entities: []Entity{{ID: 0, Lane: 1, Y: 400, Kind: KindReward}},
			want:     Input{},
		},
		{
			name:     "obstacle far away",
			lane:     1,
			entities: []Entity{{ID: 0, Lane: 1, Y: 100, Kind: KindObstacle}},
			want:     Input{},
		},
		{
			name:     "obstacle close, left free",
			lane:     1,
			entities: []Entity{{ID: 0, Lane: 1, Y: 400, Kind: KindObstacle}},
			want:     Input{Left: true},
		},
		{
			name: "obstacle close, left blocked",
			lane: 1,
			entities: []Entity{
				{ID: 0, Lane: 1, Y: 400, Kind: KindObstacle},
				{ID: 1, Lane: 0, Y: 420, Kind: KindObstacle},
			},
			want: Input{Right: true},
		},
		{
			name:     "left edge goes right",
			lane:     0,
			entities: []Entity{{ID: 0, Lane: 0, Y: 400, Kind: KindObstacle}},
			want:     Input{Right: true},
		},
		{
			name: "boxed in",
			lane: 1,
			entities: []Entity{
				{ID: 0, Lane: 0, Y: 400, Kind: KindObstacle},
				{ID: 1, Lane: 1, Y: 400, Kind: KindObstacle},
				{ID: 2, Lane: 2, Y: 400, Kind: KindObstacle},
			},
			want: Input{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := Snapshot{Phase: PhaseRunning, Lane: tc.lane, Entities: tc.entities}
			if got := pilot.Steer(snap); got != tc.want {
				t.Errorf("Steer() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestAutopilotIdleWhenNotRunning(t *testing.T) {
	pilot := NewAutopilot(NewField(quietConfig().Field))
	snap := Snapshot{
		Phase:    PhaseEnded,
		Lane:     1,
		Entities: []Entity{{Lane: 1, Y: 480, Kind: KindObstacle}},
	}
	if got := pilot.Steer(snap); got != (Input{}) {
		t.Errorf("Steer() on ended run = %+v, expected no input", got)
	}
}

func TestAutopilotSurvivesLonger(t *testing.T) {
	m := runningMatch(t, quietConfig(), 3)
	pilot := NewAutopilot(m.Field())

	// A single obstacle in the player's lane must be dodged
	place(m, KindObstacle, m.Lane(), 0)
	for i := 0; i < 200 && m.Phase() == PhaseRunning; i++ {
		m.Advance(frame, pilot.Steer(m.Snapshot()))
	}
	if m.Phase() != PhaseRunning {
		t.Error("autopilot crashed into a lone obstacle")
	}
}
