package service

import (
	"testing"
	"time"

	"online_exam_backend/internal/model"
)

func TestValidateExamTimes(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := validateExamTimes(start, start.Add(time.Hour)); err != nil {
		t.Errorf("valid window rejected: %v", err)
	}
	if err := validateExamTimes(start, start); err == nil {
		t.Error("zero-length window accepted")
	}
	if err := validateExamTimes(start, start.Add(-time.Hour)); err == nil {
		t.Error("inverted window accepted")
	}
}

func gradedSubmission(percentage float64, status model.ScoreStatus) model.Submission {
	return model.Submission{
		Graded:     true,
		TotalScore: &percentage,
		Score:      &model.Score{TotalScore: percentage, PercentageScore: percentage, Status: status},
	}
}

func TestComputeExamStats(t *testing.T) {
	t.Run("no submissions", func(t *testing.T) {
		stats := ComputeExamStats(1, nil)
		if stats.SubmissionCount != 0 || stats.GradedCount != 0 || stats.AverageScore != 0 {
			t.Errorf("unexpected stats for empty input: %+v", stats)
		}
	})

	t.Run("mixed graded and ungraded", func(t *testing.T) {
		submissions := []model.Submission{
			gradedSubmission(80, model.ScorePass),
			gradedSubmission(40, model.ScoreFail),
			gradedSubmission(60, model.ScorePass),
			{Status: model.SubmissionSubmitted}, // 未判分不计入
		}

		stats := ComputeExamStats(1, submissions)
		if stats.SubmissionCount != 4 {
			t.Errorf("SubmissionCount = %d, want 4", stats.SubmissionCount)
		}
		if stats.GradedCount != 3 {
			t.Errorf("GradedCount = %d, want 3", stats.GradedCount)
		}
		if stats.AverageScore != 60 {
			t.Errorf("AverageScore = %v, want 60", stats.AverageScore)
		}
		if stats.HighestScore != 80 || stats.LowestScore != 40 {
			t.Errorf("range = [%v, %v], want [40, 80]", stats.LowestScore, stats.HighestScore)
		}
		if stats.PassCount != 2 || stats.FailCount != 1 {
			t.Errorf("pass/fail = %d/%d, want 2/1", stats.PassCount, stats.FailCount)
		}
		if stats.PassRate < 66.6 || stats.PassRate > 66.7 {
			t.Errorf("PassRate = %v, want ~66.67", stats.PassRate)
		}
	})

	t.Run("lowest score can be zero", func(t *testing.T) {
		submissions := []model.Submission{
			gradedSubmission(0, model.ScoreFail),
			gradedSubmission(100, model.ScorePass),
		}
		stats := ComputeExamStats(1, submissions)
		if stats.LowestScore != 0 {
			t.Errorf("LowestScore = %v, want 0", stats.LowestScore)
		}
	})
}
