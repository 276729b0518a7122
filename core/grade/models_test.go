package grade

import "testing"

func TestGrade_Passed(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{name: "well above", score: 95, want: true},
		{name: "exactly at the mark", score: 60, want: true},
		{name: "just below", score: 59.9, want: false},
		{name: "zero", score: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Grade{Score: tt.score}
			if got := g.Passed(); got != tt.want {
				t.Errorf("Passed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{name: "empty", scores: nil, want: 0},
		{name: "single", scores: []float64{85}, want: 85},
		{name: "rounds up", scores: []float64{85, 92, 89, 95}, want: 90.3},
		{name: "rounds down", scores: []float64{80, 80, 80.1}, want: 80},
		{name: "one decimal kept", scores: []float64{70, 71}, want: 70.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grades := make([]Grade, 0, len(tt.scores))
			for _, s := range tt.scores {
				grades = append(grades, Grade{Score: s})
			}
			if got := Average(grades); got != tt.want {
				t.Errorf("Average() = %v, want %v", got, tt.want)
			}
		})
	}
}
