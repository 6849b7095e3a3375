package linkedin

import (
	"errors"
	"testing"
	"time"

	"easy_apply_go/model"

	"github.com/stretchr/testify/assert"
)

// scriptedModal 按脚本暴露按钮序列，驱动向导状态机
type scriptedModal struct {
	script           []string // 每一步可见的按钮标签
	step             int
	closed           bool
	validation       bool
	closeOnSubmit    bool
	clickErr         error // 非nil时所有点击都失败，模拟控件持续不可交互
	closeAfterChecks int // 第N次可见性检查后自行关闭，模拟操作员手动提交
	doneClicked      bool
	clicks           []string
}

func (m *scriptedModal) Visible() bool {
	if m.closeAfterChecks > 0 {
		m.closeAfterChecks--
		if m.closeAfterChecks == 0 {
			m.closed = true
		}
	}
	return !m.closed
}

func (m *scriptedModal) ButtonVisible(label string) bool {
	if m.closed || m.step >= len(m.script) {
		return false
	}
	return m.script[m.step] == label
}

func (m *scriptedModal) ClickButton(label string) error {
	if m.clickErr != nil {
		return m.clickErr
	}
	m.clicks = append(m.clicks, label)
	if label == controlSubmit {
		if m.closeOnSubmit {
			m.closed = true
		}
		return nil
	}
	m.step++
	return nil
}

func (m *scriptedModal) ClickDoneIfPresent()      { m.doneClicked = true }
func (m *scriptedModal) HasValidationError() bool { return m.validation }
func (m *scriptedModal) FillDefaults()            {}
func (m *scriptedModal) UnfollowCompany()         {}

type fakePrompter struct {
	pauses  []string
	onPause func()
}

func (p *fakePrompter) Pause(message string) {
	p.pauses = append(p.pauses, message)
	if p.onPause != nil {
		p.onPause()
	}
}

func newTestEngine(behavior *BehaviorSpec, prompter *fakePrompter) *WizardEngine {
	engine := NewWizardEngine(behavior, prompter)
	engine.poll = time.Millisecond
	return engine
}

func TestWizardNextNextSubmitAutoSubmit(t *testing.T) {
	modal := &scriptedModal{
		script:        []string{controlNext, controlNext, controlSubmit},
		closeOnSubmit: true,
	}
	prompter := &fakePrompter{}
	engine := newTestEngine(&BehaviorSpec{AutoSubmit: true, MaxIdle: time.Second}, prompter)

	status := engine.Run(modal)

	assert.Equal(t, model.StatusSubmitted, status)
	assert.Equal(t, []string{controlNext, controlNext, controlSubmit}, modal.clicks)
	assert.Empty(t, prompter.pauses)
}

func TestWizardReviewStepAdvances(t *testing.T) {
	modal := &scriptedModal{
		script:        []string{controlNext, controlReview, controlSubmit},
		closeOnSubmit: true,
	}
	engine := newTestEngine(&BehaviorSpec{AutoSubmit: true, MaxIdle: time.Second}, &fakePrompter{})

	status := engine.Run(modal)

	assert.Equal(t, model.StatusSubmitted, status)
	assert.Equal(t, []string{controlNext, controlReview, controlSubmit}, modal.clicks)
}

func TestWizardClosedDialog(t *testing.T) {
	modal := &scriptedModal{closed: true}
	engine := newTestEngine(&BehaviorSpec{MaxIdle: time.Second}, &fakePrompter{})

	assert.Equal(t, model.StatusClosed, engine.Run(modal))
}

func TestWizardUnrecognizedStepTimesOutAfterCeiling(t *testing.T) {
	// 永不暴露已知控件也永不关闭的弹窗，必须在空转上限之后（而非之前）超时
	modal := &scriptedModal{script: []string{}}
	maxIdle := 60 * time.Millisecond
	engine := newTestEngine(&BehaviorSpec{PauseOnUnfilled: false, MaxIdle: maxIdle}, &fakePrompter{})

	start := time.Now()
	status := engine.Run(modal)
	elapsed := time.Since(start)

	assert.Equal(t, model.StatusTimeout, status)
	assert.GreaterOrEqual(t, elapsed, maxIdle)
}

func TestWizardFailingClickTimesOutAfterCeiling(t *testing.T) {
	// 按钮可见但点击持续失败，同样要在空转上限后超时而不是无限重试
	modal := &scriptedModal{
		script:   []string{controlReview},
		clickErr: errors.New("element is not attached to the DOM"),
	}
	maxIdle := 50 * time.Millisecond
	engine := newTestEngine(&BehaviorSpec{PauseOnUnfilled: false, MaxIdle: maxIdle}, &fakePrompter{})

	start := time.Now()
	status := engine.Run(modal)

	assert.Equal(t, model.StatusTimeout, status)
	assert.GreaterOrEqual(t, time.Since(start), maxIdle)
}

func TestWizardValidationErrorPausesThenSubmits(t *testing.T) {
	modal := &scriptedModal{
		script:     []string{controlSubmit},
		validation: true,
	}
	prompter := &fakePrompter{}
	prompter.onPause = func() {
		// 模拟操作员补全必填项
		modal.validation = false
		modal.closeOnSubmit = true
	}
	engine := newTestEngine(&BehaviorSpec{AutoSubmit: true, PauseOnUnfilled: true, MaxIdle: time.Second}, prompter)

	status := engine.Run(modal)

	assert.Equal(t, model.StatusSubmitted, status)
	assert.Len(t, prompter.pauses, 1)
	assert.Equal(t, []string{controlSubmit, controlSubmit}, modal.clicks)
}

func TestWizardManualSubmitWaitsForClose(t *testing.T) {
	// 关闭自动提交时引擎只等待操作员在浏览器里点Submit
	modal := &scriptedModal{script: []string{controlSubmit}, closeAfterChecks: 3}
	engine := newTestEngine(&BehaviorSpec{AutoSubmit: false, MaxIdle: 50 * time.Millisecond}, &fakePrompter{})

	status := engine.Run(modal)

	assert.Equal(t, model.StatusSubmitted, status)
	assert.Empty(t, modal.clicks) // 引擎自己不点Submit
	assert.True(t, modal.doneClicked)
}

func TestWizardManualSubmitTimesOut(t *testing.T) {
	modal := &scriptedModal{script: []string{controlSubmit}}
	engine := newTestEngine(&BehaviorSpec{AutoSubmit: false, MaxIdle: 30 * time.Millisecond}, &fakePrompter{})

	assert.Equal(t, model.StatusTimeout, engine.Run(modal))
}
