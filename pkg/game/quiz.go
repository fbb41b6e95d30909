package game

import (
	"errors"
	"log"
	"time"

	"github.com/decker502/heartcollage/pkg/config"
)

var (
	// ErrQuizFinished 不在答题阶段时作答
	ErrQuizFinished = errors.New("quiz: not in progress")
	// ErrInvalidOption 选项下标越界
	ErrInvalidOption = errors.New("quiz: invalid option")
	// ErrPrizeLocked 奖品未解锁或不存在，或者还没到结算阶段
	ErrPrizeLocked = errors.New("quiz: prize locked")
)

// TimedOut 超时未作答时记录的答案
const TimedOut = -1

// DefaultTimeLimit 每题默认限时
const DefaultTimeLimit = 20 * time.Second

// QuizStep 问答阶段
type QuizStep string

const (
	QuizIdle       QuizStep = "idle"
	QuizInProgress QuizStep = "quiz"
	QuizResult     QuizStep = "result"
)

// Question 一道题
type Question struct {
	Prompt  string
	Options []string
	Correct int
	Points  int
}

// Prize 奖品档位
type Prize struct {
	ID       string
	Name     string
	MinScore int
	Main     bool
}

// QuizSnapshot 可持久化的问答进度
type QuizSnapshot struct {
	Step           QuizStep `yaml:"step"`
	Current        int      `yaml:"current"`
	Score          int      `yaml:"score"`
	Answers        []int    `yaml:"answers"`
	SelectedPrize  string   `yaml:"selectedPrize,omitempty"`
	ConfirmedPrize string   `yaml:"confirmedPrize,omitempty"`
}

// QuizSession 问答会话
//
// 状态流转：idle → quiz（逐题作答/超时）→ result（选择并确认奖品）。
// Start() 可以在任何阶段重新开始。
type QuizSession struct {
	questions []Question
	prizes    []Prize
	timeLimit time.Duration

	state    QuizSnapshot
	timeLeft time.Duration
}

// NewQuizSession 创建问答会话
func NewQuizSession(questions []Question, prizes []Prize, timeLimit time.Duration) *QuizSession {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &QuizSession{
		questions: questions,
		prizes:    prizes,
		timeLimit: timeLimit,
		state:     QuizSnapshot{Step: QuizIdle},
		timeLeft:  timeLimit,
	}
}

// NewQuizSessionFromConfig 根据配置创建问答会话
func NewQuizSessionFromConfig(cfg config.QuizConfig) *QuizSession {
	questions := make([]Question, len(cfg.Questions))
	for i, q := range cfg.Questions {
		questions[i] = Question{Prompt: q.Prompt, Options: q.Options, Correct: q.Correct, Points: q.Points}
	}
	prizes := make([]Prize, len(cfg.Prizes))
	for i, p := range cfg.Prizes {
		prizes[i] = Prize{ID: p.ID, Name: p.Name, MinScore: p.MinScore, Main: p.Main}
	}
	return NewQuizSession(questions, prizes, cfg.TimeLimit())
}

// Restore 恢复保存的进度
//
// 未知阶段视为 idle；答题中断的会话从保存的题目继续，计时重新开始。
func (q *QuizSession) Restore(s QuizSnapshot) {
	s.Answers = append([]int(nil), s.Answers...)
	switch s.Step {
	case QuizInProgress:
		if s.Current < 0 {
			s.Current = 0
		}
		if s.Current >= len(q.questions) {
			s.Step = QuizResult
		}
	case QuizResult:
	default:
		s = QuizSnapshot{Step: QuizIdle}
	}

	// 奖品只在结算阶段有效，且必须已按保存的分数解锁
	if _, ok := q.unlockedPrize(s.SelectedPrize, s.Score); !ok || s.Step != QuizResult {
		s.SelectedPrize = ""
	}
	if _, ok := q.unlockedPrize(s.ConfirmedPrize, s.Score); !ok || s.Step != QuizResult {
		s.ConfirmedPrize = ""
	}
	q.state = s
	q.timeLeft = q.timeLimit
}

// Snapshot 当前进度（副本）
func (q *QuizSession) Snapshot() QuizSnapshot {
	s := q.state
	s.Answers = append([]int(nil), q.state.Answers...)
	return s
}

// Start 开始（或重新开始）答题
func (q *QuizSession) Start() {
	q.state = QuizSnapshot{Step: QuizInProgress, Answers: []int{}}
	q.timeLeft = q.timeLimit
	if len(q.questions) == 0 {
		q.state.Step = QuizResult
	}
}

// Step 当前阶段
func (q *QuizSession) Step() QuizStep { return q.state.Step }

// Index 当前题目下标
func (q *QuizSession) Index() int { return q.state.Current }

// Total 题目数量
func (q *QuizSession) Total() int { return len(q.questions) }

// Score 当前得分
func (q *QuizSession) Score() int { return q.state.Score }

// TimeLeft 本题剩余时间
func (q *QuizSession) TimeLeft() time.Duration { return q.timeLeft }

// TimeLimit 每题限时
func (q *QuizSession) TimeLimit() time.Duration { return q.timeLimit }

// Answers 已作答记录，超时为 TimedOut
func (q *QuizSession) Answers() []int {
	return append([]int(nil), q.state.Answers...)
}

// Current 当前题目
func (q *QuizSession) Current() (Question, bool) {
	if q.state.Step != QuizInProgress || q.state.Current >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[q.state.Current], true
}

// MaxScore 全部答对的总分
func (q *QuizSession) MaxScore() int {
	total := 0
	for _, question := range q.questions {
		total += question.Points
	}
	return total
}

// Answer 回答当前题目，返回是否答对
func (q *QuizSession) Answer(option int) (bool, error) {
	question, ok := q.Current()
	if !ok {
		return false, ErrQuizFinished
	}
	if option < 0 || option >= len(question.Options) {
		return false, ErrInvalidOption
	}

	correct := option == question.Correct
	if correct {
		q.state.Score += question.Points
	}
	q.advance(option)
	return correct, nil
}

// Tick 推进计时，超时视为答错；返回本次是否超时
func (q *QuizSession) Tick(dt time.Duration) bool {
	if q.state.Step != QuizInProgress {
		return false
	}
	q.timeLeft -= dt
	if q.timeLeft > 0 {
		return false
	}
	log.Printf("[Quiz] 第 %d 题超时", q.state.Current+1)
	q.advance(TimedOut)
	return true
}

func (q *QuizSession) advance(answer int) {
	q.state.Answers = append(q.state.Answers, answer)
	q.state.Current++
	q.timeLeft = q.timeLimit
	if q.state.Current >= len(q.questions) {
		q.state.Step = QuizResult
		log.Printf("[Quiz] 答题结束，得分 %d/%d", q.state.Score, q.MaxScore())
	}
}

// Prizes 全部奖品档位
func (q *QuizSession) Prizes() []Prize {
	return q.prizes
}

// Unlocked 当前得分可以选择的奖品
func (q *QuizSession) Unlocked() []Prize {
	var out []Prize
	for _, p := range q.prizes {
		if q.IsUnlocked(p) {
			out = append(out, p)
		}
	}
	return out
}

// IsUnlocked 奖品是否已解锁
func (q *QuizSession) IsUnlocked(p Prize) bool {
	return q.state.Score >= p.MinScore
}

// SelectPrize 在结算阶段选择一个已解锁的奖品
func (q *QuizSession) SelectPrize(id string) error {
	if q.state.Step != QuizResult || q.state.ConfirmedPrize != "" {
		return ErrPrizeLocked
	}
	p, ok := q.unlockedPrize(id, q.state.Score)
	if !ok {
		return ErrPrizeLocked
	}
	q.state.SelectedPrize = p.ID
	return nil
}

// SelectedPrize 已选择（未确认）的奖品
func (q *QuizSession) SelectedPrize() (Prize, bool) {
	return q.findPrize(q.state.SelectedPrize)
}

// ConfirmPrize 确认已选择的奖品，条件与 SelectPrize 相同
func (q *QuizSession) ConfirmPrize() (Prize, bool) {
	if q.state.Step != QuizResult {
		return Prize{}, false
	}
	p, ok := q.unlockedPrize(q.state.SelectedPrize, q.state.Score)
	if !ok {
		return Prize{}, false
	}
	q.state.ConfirmedPrize = p.ID
	log.Printf("[Quiz] 确认奖品: %s", p.ID)
	return p, true
}

// ConfirmedPrize 已确认的奖品
func (q *QuizSession) ConfirmedPrize() (Prize, bool) {
	return q.findPrize(q.state.ConfirmedPrize)
}

func (q *QuizSession) unlockedPrize(id string, score int) (Prize, bool) {
	p, ok := q.findPrize(id)
	if !ok || score < p.MinScore {
		return Prize{}, false
	}
	return p, true
}

func (q *QuizSession) findPrize(id string) (Prize, bool) {
	if id == "" {
		return Prize{}, false
	}
	for _, p := range q.prizes {
		if p.ID == id {
			return p, true
		}
	}
	return Prize{}, false
}
