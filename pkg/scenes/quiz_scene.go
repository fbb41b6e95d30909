package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/decker502/heartcollage/pkg/effects"
	"github.com/decker502/heartcollage/pkg/game"
	"github.com/decker502/heartcollage/pkg/ui"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 作答后的反馈时间（秒），期间忽略输入、暂停计时
const (
	correctDelay = 0.8
	wrongDelay   = 0.6

	urgentSeconds = 5
)

// 礼花：答对一题、确认奖品
const (
	answerConfettiCount  = 80
	answerConfettiSpread = 70
	answerConfettiY      = 0.6

	prizeConfettiCount  = 100
	prizeConfettiSpread = 100
)

// feedback 作答后短暂停留在已答题目上的状态
type feedback struct {
	question game.Question
	index    int
	score    int
	fraction float64 // 作答时剩余时间的比例
	seconds  int
	chosen   int // game.TimedOut 表示超时
	correct  bool
	duration float64
	left     float64
}

// QuizScene 问答小游戏：开始页、逐题作答、选择奖品、奖品证书
type QuizScene struct {
	deps     *Deps
	session  *game.QuizSession
	hearts   *effects.Field
	confetti *effects.Confetti

	feedback *feedback
	recorded bool // 本轮结果是否已计入统计

	start   *ui.Button
	back    *ui.Button
	confirm *ui.Button
	options []*ui.Button
	prizes  []*ui.Button

	width, height int
	scale         float64
	panel         ui.Rect
}

var (
	_ game.Lifecycle      = (*QuizScene)(nil)
	_ game.Resizable      = (*QuizScene)(nil)
	_ game.PointerHandler = (*QuizScene)(nil)
)

// NewQuizScene 创建问答场景，恢复上次保存的进度
func NewQuizScene(d *Deps) *QuizScene {
	session := game.NewQuizSessionFromConfig(d.Config.Quiz)
	session.Restore(d.Progress.GetProgress().Quiz)

	labels := d.Config.Quiz.Labels
	return &QuizScene{
		deps:     d,
		session:  session,
		hearts:   effects.NewField(d.rng()),
		confetti: effects.NewConfetti(d.rng()),
		recorded: session.Step() == game.QuizResult,
		start:    ui.NewButton(labels.Start, ui.Rect{}, ui.GoldStyle),
		back:     ui.NewButton(labels.Back, ui.Rect{}, ui.SecondaryStyle),
		confirm:  ui.NewButton(labels.Confirm, ui.Rect{}, ui.GoldStyle),
		scale:    1,
	}
}

// Session 问答会话（测试用）
func (s *QuizScene) Session() *game.QuizSession {
	return s.session
}

// Busy 是否处于作答反馈中
func (s *QuizScene) Busy() bool {
	return s.feedback != nil
}

// OnEnter 实现 game.Lifecycle
func (s *QuizScene) OnEnter() {
	log.Printf("[QuizScene] 进入问答（阶段 %s，第 %d/%d 题）", s.session.Step(), s.session.Index()+1, s.session.Total())
	s.layout()
}

// OnExit 实现 game.Lifecycle
func (s *QuizScene) OnExit() {
	s.save()
	s.deps.setCursor(ebiten.CursorShapeDefault)
}

// Resize 实现 game.Resizable
func (s *QuizScene) Resize(width, height int) {
	s.deps.resized(width, height)
	s.width, s.height = width, height
	s.scale = layoutScale(width, height)
	s.hearts.Resize(width, height)
	s.confetti.Resize(width, height)

	k := s.scale
	w := min(float64(width)-32*k, 560*k)
	h := min(float64(height)-32*k, 660*k)
	s.panel = ui.Centered(float64(width)/2, float64(height)/2, w, h)
	s.layout()
}

// layout 根据当前阶段重新生成按钮
func (s *QuizScene) layout() {
	if s.width == 0 || s.height == 0 {
		return
	}
	k := s.scale
	p := s.panel
	cx := p.X + p.W/2
	inner := p.W - 48*k

	s.back.Rect = ui.Rect{X: p.X + 24*k, Y: p.Y + p.H - 64*k, W: 120 * k, H: 44 * k}
	s.options, s.prizes = nil, nil
	s.start.Reset()
	s.confirm.Reset()

	step := s.session.Step()
	if s.feedback != nil {
		step = game.QuizInProgress
	}
	switch step {
	case game.QuizIdle:
		s.start.Rect = ui.Centered(cx, p.Y+p.H*0.55, 200*k, 52*k)

	case game.QuizInProgress:
		q, ok := s.displayQuestion()
		if !ok {
			return
		}
		top := p.Y + 220*k
		for i, opt := range q.Options {
			b := ui.NewButton(opt, ui.Rect{X: p.X + 24*k, Y: top + float64(i)*60*k, W: inner, H: 50 * k}, ui.OptionStyle)
			s.options = append(s.options, b)
		}

	case game.QuizResult:
		if _, confirmed := s.session.ConfirmedPrize(); confirmed {
			return
		}
		top := p.Y + 150*k
		for i, prize := range s.session.Prizes() {
			style := ui.OptionStyle
			if prize.Main {
				style.Border = amberColor
			}
			b := ui.NewButton(prize.Name, ui.Rect{X: p.X + 24*k, Y: top + float64(i)*56*k, W: inner, H: 48 * k}, style)
			b.Enabled = s.session.IsUnlocked(prize)
			s.prizes = append(s.prizes, b)
		}
		s.confirm.Rect = ui.Centered(cx+60*k, p.Y+p.H-42*k, 200*k, 44*k)
	}
}

// displayQuestion 当前应显示的题目：反馈期间仍显示刚答完的那道
func (s *QuizScene) displayQuestion() (game.Question, bool) {
	if s.feedback != nil {
		return s.feedback.question, true
	}
	return s.session.Current()
}

// HandlePointer 实现 game.PointerHandler
func (s *QuizScene) HandlePointer(ev utils.PointerEvent) {
	if s.feedback != nil {
		return
	}

	if s.back.Update(ev) {
		s.save()
		s.deps.Navigator.Goto(game.SceneCollage)
		return
	}

	switch s.session.Step() {
	case game.QuizIdle:
		if s.start.Update(ev) {
			s.begin()
		}
	case game.QuizInProgress:
		for i, b := range s.options {
			if b.Update(ev) {
				s.answer(i)
				return
			}
		}
	case game.QuizResult:
		s.handleResult(ev)
	}
}

func (s *QuizScene) begin() {
	s.session.Start()
	s.recorded = false
	log.Printf("[QuizScene] 开始答题")
	s.save()
	s.layout()
}

func (s *QuizScene) answer(option int) {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	fb := s.snapshotFeedback(q)
	correct, err := s.session.Answer(option)
	if err != nil {
		log.Printf("[QuizScene] 作答失败: %v", err)
		return
	}
	fb.chosen = option
	fb.correct = correct
	if correct {
		s.confetti.Burst(answerConfettiCount, answerConfettiSpread, 0.5, answerConfettiY)
	}
	s.startFeedback(fb)
}

func (s *QuizScene) snapshotFeedback(q game.Question) *feedback {
	return &feedback{
		question: q,
		index:    s.session.Index(),
		score:    s.session.Score(),
		fraction: s.timeFraction(),
		seconds:  s.secondsLeft(),
	}
}

func (s *QuizScene) startFeedback(fb *feedback) {
	fb.duration = wrongDelay
	if fb.correct {
		fb.duration = correctDelay
	}
	fb.left = fb.duration
	s.feedback = fb
	s.save()
}

func (s *QuizScene) handleResult(ev utils.PointerEvent) {
	if _, confirmed := s.session.ConfirmedPrize(); confirmed {
		return
	}
	prizes := s.session.Prizes()
	for i, b := range s.prizes {
		if b.Update(ev) {
			if err := s.session.SelectPrize(prizes[i].ID); err != nil {
				log.Printf("[QuizScene] 无法选择奖品 %s: %v", prizes[i].ID, err)
				return
			}
			s.save()
			return
		}
	}
	if _, selected := s.session.SelectedPrize(); selected && s.confirm.Update(ev) {
		if _, ok := s.session.ConfirmPrize(); ok {
			s.confetti.Burst(prizeConfettiCount, prizeConfettiSpread, 0.5, 0.5)
			s.save()
			s.layout()
		}
	}
}

// Update 实现 game.Scene
func (s *QuizScene) Update(deltaTime float64) {
	s.hearts.Update(deltaTime)
	s.confetti.Update(deltaTime)

	if s.feedback != nil {
		s.feedback.left -= deltaTime
		if s.feedback.left <= 0 {
			s.feedback = nil
			s.finishRound()
			s.layout()
		}
	} else if q, ok := s.session.Current(); ok {
		index, score := s.session.Index(), s.session.Score()
		if s.session.Tick(time.Duration(deltaTime * float64(time.Second))) {
			s.startFeedback(&feedback{question: q, index: index, score: score, chosen: game.TimedOut})
		}
	}

	s.updateCursor()
}

// finishRound 答完最后一题后计入统计
func (s *QuizScene) finishRound() {
	if s.recorded || s.session.Step() != game.QuizResult {
		return
	}
	s.recorded = true
	if err := s.deps.Progress.RecordQuiz(s.session.Score()); err != nil {
		log.Printf("[QuizScene] Warning: 保存成绩失败: %v", err)
	}
}

func (s *QuizScene) save() {
	if err := s.deps.Progress.SaveQuiz(s.session.Snapshot()); err != nil {
		log.Printf("[QuizScene] Warning: 保存问答进度失败: %v", err)
	}
}

func (s *QuizScene) updateCursor() {
	hovered := s.back.Hovered() || s.start.Hovered() || s.confirm.Hovered()
	for _, b := range s.options {
		hovered = hovered || b.Hovered()
	}
	for _, b := range s.prizes {
		hovered = hovered || b.Hovered()
	}
	if hovered && s.feedback == nil {
		s.deps.setCursor(ebiten.CursorShapePointer)
	} else {
		s.deps.setCursor(ebiten.CursorShapeDefault)
	}
}

func (s *QuizScene) timeFraction() float64 {
	limit := s.session.TimeLimit()
	if limit <= 0 {
		return 0
	}
	return math.Max(0, float64(s.session.TimeLeft())/float64(limit))
}

func (s *QuizScene) secondsLeft() int {
	return int(math.Ceil(s.session.TimeLeft().Seconds()))
}

// Draw 实现 game.Scene
func (s *QuizScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	rm := s.deps.Resources
	s.hearts.Draw(screen, rm)

	k := s.scale
	drawPanel(screen, rm, s.panel, panelColor, noBorder, 24*k)

	switch s.session.Step() {
	case game.QuizIdle:
		s.drawIdle(screen)
	case game.QuizInProgress:
		s.drawQuestion(screen)
	case game.QuizResult:
		if s.feedback != nil {
			s.drawQuestion(screen)
			break
		}
		if prize, ok := s.session.ConfirmedPrize(); ok {
			s.drawCertificate(screen, prize)
		} else {
			s.drawResult(screen)
		}
	}

	if s.feedback == nil {
		s.back.Draw(screen, rm, rm.Font(16*k))
	}
	s.confetti.Draw(screen, rm)
}

func (s *QuizScene) drawIdle(screen *ebiten.Image) {
	rm := s.deps.Resources
	k := s.scale
	cx := s.panel.X + s.panel.W/2
	ui.DrawText(screen, s.deps.Config.Quiz.Intro, rm.Font(20*k), cx, s.panel.Y+s.panel.H*0.4, mutedColor)
	s.start.Draw(screen, rm, rm.Font(20*k))
}

func (s *QuizScene) drawQuestion(screen *ebiten.Image) {
	rm := s.deps.Resources
	labels := s.deps.Config.Quiz.Labels
	k := s.scale
	p := s.panel

	q, ok := s.displayQuestion()
	if !ok {
		return
	}
	index, score := s.session.Index(), s.session.Score()
	fraction, seconds := s.timeFraction(), s.secondsLeft()
	if fb := s.feedback; fb != nil {
		index, score = fb.index, fb.score
		fraction, seconds = fb.fraction, fb.seconds
	}

	// 答错时面板闪红
	if fb := s.feedback; fb != nil && !fb.correct {
		flash := wrongColor
		flash.A = uint8(200 * fb.left / fb.duration)
		drawPanel(screen, rm, p, flash, noBorder, 24*k)
	}

	small := rm.Font(14 * k)
	left, right := p.X+24*k, p.X+p.W-24*k
	drawTextLeft(screen, fmt.Sprintf(labels.Question, index+1, s.session.Total()), small, left, p.Y+32*k, mutedColor)
	drawTextRight(screen, fmt.Sprintf(labels.Score, score), small, right, p.Y+32*k, amberColor)

	// 倒计时条
	barColorNow, secColor := barColor, mutedColor
	if seconds <= urgentSeconds {
		barColorNow, secColor = urgentColor, urgentColor
	}
	barW := p.W - 48*k - 48*k
	barY := p.Y + 62*k
	vector.DrawFilledRect(screen, float32(left), float32(barY), float32(barW), float32(6*k), trackColor, true)
	vector.DrawFilledRect(screen, float32(left), float32(barY), float32(barW*fraction), float32(6*k), barColorNow, true)
	drawTextRight(screen, fmt.Sprintf(labels.Seconds, seconds), small, right, barY+3*k, secColor)

	face := rm.Font(19 * k)
	lines := utils.WrapText(q.Prompt, face, p.W-48*k)
	ui.DrawLines(screen, lines, face, p.X+p.W/2, p.Y+96*k, textColor)

	optionFace := rm.Font(16 * k)
	for i, b := range s.options {
		if fb := s.feedback; fb != nil {
			switch {
			case i == fb.chosen && fb.correct:
				b.Style.Fill = correctColor
			case i == fb.chosen:
				b.Style.Fill = wrongColor
			}
			b.Enabled = false
		}
		b.Draw(screen, rm, optionFace)
	}
}

func (s *QuizScene) drawResult(screen *ebiten.Image) {
	rm := s.deps.Resources
	labels := s.deps.Config.Quiz.Labels
	k := s.scale
	p := s.panel
	cx := p.X + p.W/2

	scoreBox := ui.Rect{X: p.X + 24*k, Y: p.Y + 20*k, W: p.W - 48*k, H: 80 * k}
	drawPanel(screen, rm, scoreBox, amberLight, noBorder, 16*k)
	ui.DrawText(screen, fmt.Sprint(s.session.Score()), rm.Font(30*k), cx, scoreBox.Y+32*k, amberColor)
	ui.DrawText(screen, labels.Points, rm.Font(14*k), cx, scoreBox.Y+62*k, mutedColor)
	drawTextLeft(screen, labels.Choose, rm.Font(15*k), p.X+24*k, p.Y+128*k, textColor)

	selected, hasSelected := s.session.SelectedPrize()
	small := rm.Font(13 * k)
	prizes := s.session.Prizes()
	for i, b := range s.prizes {
		prize := prizes[i]
		if hasSelected && prize.ID == selected.ID {
			b.Style.Fill = amberLight
			b.Style.Border = amberColor
		}
		b.Draw(screen, rm, rm.Font(15*k))

		right := b.Rect.X + b.Rect.W - 16*k
		_, cy := b.Rect.Center()
		switch {
		case !b.Enabled:
			drawTextRight(screen, fmt.Sprintf(labels.Locked, prize.MinScore), small, right, cy, mutedColor)
		case hasSelected && prize.ID == selected.ID:
			drawTextRight(screen, labels.Selected, small, right, cy, amberColor)
		case prize.Main:
			drawTextRight(screen, labels.MainPrize, small, right, cy, amberColor)
		}
	}

	if hasSelected {
		ui.DrawText(screen, labels.YourPrize+" "+selected.Name, rm.Font(15*k), cx, s.confirm.Rect.Y-22*k, amberColor)
		s.confirm.Draw(screen, rm, rm.Font(16*k))
	}
}

func (s *QuizScene) drawCertificate(screen *ebiten.Image, prize game.Prize) {
	rm := s.deps.Resources
	labels := s.deps.Config.Quiz.Labels
	k := s.scale
	p := s.panel
	cert := ui.Rect{X: p.X + 24*k, Y: p.Y + 24*k, W: p.W - 48*k, H: p.H - 112*k}
	drawPanel(screen, rm, cert, amberLight, certificateBorder, 20*k)
	drawCorners(screen, cert, 16*k, 28*k, amberColor)

	cx := cert.X + cert.W/2
	ui.DrawText(screen, labels.Certificate, rm.Font(13*k), cx, cert.Y+48*k, amberColor)
	ui.DrawText(screen, prize.Name, rm.Font(26*k), cx, cert.Y+cert.H*0.35, textColor)

	face := rm.Font(15 * k)
	lines := utils.WrapText(fmt.Sprintf(labels.Holder, prize.Name), face, cert.W-72*k)
	ui.DrawLines(screen, lines, face, cx, cert.Y+cert.H*0.5, mutedColor)

	signature := labels.Signature + " • " + time.Now().Format("02.01.2006")
	ui.DrawText(screen, signature, rm.Font(13*k), cx, cert.Y+cert.H-40*k, mutedColor)
}

// drawCorners 证书四角的装饰线
func drawCorners(screen *ebiten.Image, r ui.Rect, inset, length float64, clr color.RGBA) {
	w := float32(2)
	x0, y0 := float32(r.X+inset), float32(r.Y+inset)
	x1, y1 := float32(r.X+r.W-inset), float32(r.Y+r.H-inset)
	l := float32(length)
	for _, c := range [][4]float32{
		{x0, y0, 1, 1}, {x1, y0, -1, 1}, {x0, y1, 1, -1}, {x1, y1, -1, -1},
	} {
		x, y, dx, dy := c[0], c[1], c[2], c[3]
		vector.StrokeLine(screen, x, y, x+dx*l, y, w, clr, true)
		vector.StrokeLine(screen, x, y, x, y+dy*l, w, clr, true)
	}
}
