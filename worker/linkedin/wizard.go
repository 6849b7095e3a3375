package linkedin

import (
	"time"

	"easy_apply_go/model"
	"easy_apply_go/utils"

	log "github.com/sirupsen/logrus"
)

// 申请弹窗的控件标签。has-text按子串匹配，"Submit"同样命中"Submit application"。
const (
	controlSubmit = "Submit"
	controlReview = "Review"
	controlNext   = "Next"
)

// applyModal 申请弹窗的操作面。生产实现包装playwright弹窗，
// 测试注入脚本化实现驱动状态机。
type applyModal interface {
	// Visible 弹窗是否仍然可见
	Visible() bool
	// ButtonVisible 指定标签的按钮是否可见
	ButtonVisible(label string) bool
	// ClickButton 点击指定标签的按钮
	ClickButton(label string) error
	// ClickDoneIfPresent 提交后出现的Done确认按钮，存在就点掉
	ClickDoneIfPresent()
	// HasValidationError 是否出现表单校验失败提示
	HasValidationError() bool
	// FillDefaults 尽力而为的默认值填充，永不致命
	FillDefaults()
	// UnfollowCompany 取消勾选关注公司，永不致命
	UnfollowCompany()
}

// WizardEngine 驱动一次申请的多步表单走到终态。
// 终态：submitted / closed / timeout。每轮循环要么推进表单、
// 要么停在人工决策点、要么终止，不存在无条件的无限重试。
type WizardEngine struct {
	behavior *BehaviorSpec
	prompter utils.Prompter
	poll     time.Duration // 轮询间隔，测试中调小
}

func NewWizardEngine(behavior *BehaviorSpec, prompter utils.Prompter) *WizardEngine {
	return &WizardEngine{
		behavior: behavior,
		prompter: prompter,
		poll:     500 * time.Millisecond,
	}
}

// Run 执行到终态，返回台账状态值。
// 空转上限在每轮循环开头统一检查，点击持续失败的步骤同样会超时退出。
func (e *WizardEngine) Run(modal applyModal) string {
	lastAction := time.Now()

	for {
		if !modal.Visible() {
			return model.StatusClosed
		}
		if time.Since(lastAction) > e.behavior.MaxIdle {
			return model.StatusTimeout
		}

		modal.FillDefaults()
		modal.UnfollowCompany()

		if modal.ButtonVisible(controlSubmit) {
			if outcome, ok := e.submit(modal, &lastAction); ok {
				return outcome
			}
			continue
		}

		if modal.ButtonVisible(controlReview) {
			if err := modal.ClickButton(controlReview); err != nil {
				log.Warnf("点击Review失败: %v", err)
				time.Sleep(e.poll)
			} else {
				lastAction = time.Now()
			}
			continue
		}

		if modal.ButtonVisible(controlNext) {
			if err := modal.ClickButton(controlNext); err != nil {
				log.Warnf("点击Next失败: %v", err)
			} else {
				lastAction = time.Now()
			}
			time.Sleep(e.poll)
			e.checkValidation(modal, &lastAction)
			continue
		}

		// 未建模的步骤：暂停等人工，或空转直到循环开头的上限检查触发
		if e.behavior.PauseOnUnfilled {
			e.prompter.Pause("当前申请步骤无法自动识别，请在弹窗中手工完成后继续")
			lastAction = time.Now()
			continue
		}
		time.Sleep(e.poll)
	}
}

// submit 处理提交步骤。返回(终态, true)表示流程结束，
// (_, false)表示留在循环内继续（校验失败等待修正）。
func (e *WizardEngine) submit(modal applyModal, lastAction *time.Time) (string, bool) {
	if !e.behavior.AutoSubmit {
		log.Info("已到提交步骤，请在浏览器弹窗中检查并点击Submit")
		if !e.waitForClose(modal) {
			log.Warn("等待提交超时，弹窗保持打开")
			return model.StatusTimeout, true
		}
		modal.ClickDoneIfPresent()
		return model.StatusSubmitted, true
	}

	if err := modal.ClickButton(controlSubmit); err != nil {
		log.Warnf("点击Submit失败: %v", err)
		time.Sleep(e.poll)
		return "", false
	}
	*lastAction = time.Now()
	time.Sleep(e.poll)

	if modal.HasValidationError() {
		if e.behavior.PauseOnUnfilled {
			e.prompter.Pause("表单校验未通过，请在弹窗中补全必填项")
			*lastAction = time.Now()
		}
		return "", false
	}

	modal.ClickDoneIfPresent()
	if !e.waitForClose(modal) {
		return model.StatusTimeout, true
	}
	return model.StatusSubmitted, true
}

// checkValidation Next之后的校验检查，失败且配置允许时暂停等人工修正。
// 人工修正的耗时不计入空转时限。
func (e *WizardEngine) checkValidation(modal applyModal, lastAction *time.Time) {
	if !modal.HasValidationError() {
		return
	}
	log.Warn("检测到表单校验失败")
	if e.behavior.PauseOnUnfilled {
		e.prompter.Pause("请在弹窗中补全必填项")
		*lastAction = time.Now()
	}
}

// waitForClose 等弹窗关闭，上限为空转时限
func (e *WizardEngine) waitForClose(modal applyModal) bool {
	return utils.PollUntil(e.behavior.MaxIdle, e.poll, func() bool {
		return !modal.Visible()
	})
}
