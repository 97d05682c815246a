package model

import "testing"

func TestLevelFor(t *testing.T) {
	cfg := &GradingConfiguration{
		PassingScore: 60,
		GradeLevels: []GradeLevel{
			{GradeName: "Excellent", MinScore: 90, MaxScore: 100},
			{GradeName: "Good", MinScore: 70, MaxScore: 90},
			{GradeName: "Unsatisfactory", MinScore: 0, MaxScore: 70},
		},
	}

	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{89.9999995, "Good"},
		{89.5, "Good"},
		{70, "Good"},
		{69.9999995, "Unsatisfactory"},
		{0, "Unsatisfactory"},
	}

	for _, tt := range tests {
		level := cfg.LevelFor(tt.percentage)
		if level == nil {
			t.Errorf("LevelFor(%v) = nil, want %s", tt.percentage, tt.want)
			continue
		}
		if level.GradeName != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.percentage, level.GradeName, tt.want)
		}
	}

	if level := cfg.LevelFor(150); level != nil {
		t.Errorf("out of range percentage matched level %s", level.GradeName)
	}
}

func TestExamTotalMarks(t *testing.T) {
	exam := &Exam{
		Questions: []Question{
			{Marks: 5},
			{Marks: 10},
			{Marks: 15},
		},
	}
	if got := exam.TotalMarks(); got != 30 {
		t.Errorf("TotalMarks() = %v, want 30", got)
	}

	empty := &Exam{}
	if got := empty.TotalMarks(); got != 0 {
		t.Errorf("empty exam TotalMarks() = %v, want 0", got)
	}
}
