package service

import (
	"math"
	"time"

	"online_exam_backend/internal/model"
)

// 判分引擎。对客观题按题型规则给分，汇总总分，再按生效的评分配置
// 推导百分比、等级读数与及格状态。全部为纯函数，便于在事务内复用。

// ScoreAnswer 单题客观判分
//   - 单选/判断：所选集合与正确集合完全一致得满分，否则0分
//   - 多选：按命中率给部分分，accuracy = TP/(TP+FP+FN)，四舍五入到整数分
//   - 主观题（essay/short_answer等）：不自动给分，等待人工评分
func ScoreAnswer(question *model.Question, answer *model.Answer) float64 {
	if !question.QuestionType.IsObjective() {
		return 0
	}

	correct := question.CorrectOptionIDs()
	selected := answer.SelectedOptionIDs()

	switch question.QuestionType {
	case model.SingleChoice, model.TrueFalse:
		if setsEqual(selected, correct) {
			return float64(question.Marks)
		}
		return 0
	case model.MultipleChoice, model.MultipleResponse:
		truePositives := 0
		for id := range selected {
			if correct[id] {
				truePositives++
			}
		}
		falsePositives := len(selected) - truePositives
		falseNegatives := len(correct) - truePositives

		total := truePositives + falsePositives + falseNegatives
		if total == 0 {
			return 0
		}
		accuracy := float64(truePositives) / float64(total)
		// math.Round 对非负数即0.5进1的四舍五入
		return math.Round(accuracy * float64(question.Marks))
	}
	return 0
}

func setsEqual(a, b map[uint]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

// AutoGradeResult 自动判分汇总
type AutoGradeResult struct {
	TotalScore float64
	// 全卷无需人工判分的题目时为 true，此时提交直接进入已判分状态
	FullyGraded bool
}

// AutoGrade 对整份提交自动判分。主观题计0分等待人工给分；
// 只要考试含主观题，FullyGraded 即为 false。
func AutoGrade(questions []model.Question, answers []model.Answer) AutoGradeResult {
	questionMap := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}

	var total float64
	for i := range answers {
		q, ok := questionMap[answers[i].QuestionID]
		if !ok {
			continue
		}
		total += ScoreAnswer(q, &answers[i])
	}

	fullyGraded := true
	for i := range questions {
		if questions[i].QuestionType.IsFreeText() {
			fullyGraded = false
			break
		}
	}

	return AutoGradeResult{TotalScore: total, FullyGraded: fullyGraded}
}

// DeriveScore 由总分与考试满分推导成绩记录：百分比、等级读数、及格状态。
// gradedBy 为人工评分者，自动判分时传 nil。
func DeriveScore(totalScore, examTotalMarks float64, cfg *model.GradingConfiguration, gradedBy *uint) model.Score {
	score := model.Score{
		Reference:  model.GenerateReference(),
		TotalScore: totalScore,
		GradedAt:   time.Now(),
		GradedByID: gradedBy,
		Status:     model.ScorePending,
	}

	if examTotalMarks <= 0 {
		return score
	}
	score.PercentageScore = totalScore / examTotalMarks * 100

	if cfg == nil {
		return score
	}

	if score.PercentageScore >= cfg.PassingScore {
		score.Status = model.ScorePass
	} else {
		score.Status = model.ScoreFail
	}

	if level := cfg.LevelFor(score.PercentageScore); level != nil {
		score.Reading = level.GradeName
		score.GradePoint = level.GradePoint
	}

	return score
}
