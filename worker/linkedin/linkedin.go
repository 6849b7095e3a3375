package linkedin

import (
	"time"

	locators "easy_apply_go/Locators"
	"easy_apply_go/model"
	"easy_apply_go/service"
	"easy_apply_go/utils"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// Easy Apply入口按钮候选
var easyApplyButtonChain = []Descriptor{
	CSS(locators.EASY_APPLY_BUTTON),
	CSS("button:has-text('Easy Apply')"),
	Role(playwright.AriaRoleButton, "Easy Apply", false),
}

// Worker LinkedIn Easy Apply投递执行器。
// 单线程协作循环：应用筛选一次，然后反复枚举卡片、去重、
// 逐个走申请向导、落账、滚动加载，直到操作员中断。
type Worker struct {
	page     playwright.Page
	filters  *FilterSpec
	behavior *BehaviorSpec
	defaults *DefaultsSpec
	ledger   *service.LedgerService
	prompter utils.Prompter

	shouldStop func() bool
	progress   func(message string, current, total int)

	seen                  map[string]struct{}
	submittedSinceRefresh int
}

func NewWorker(
	filters *FilterSpec,
	behavior *BehaviorSpec,
	defaults *DefaultsSpec,
	ledger *service.LedgerService,
	prompter utils.Prompter,
) *Worker {
	return &Worker{
		filters:  filters,
		behavior: behavior,
		defaults: defaults,
		ledger:   ledger,
		prompter: prompter,
		seen:     make(map[string]struct{}),
	}
}

func (w *Worker) SetPage(page playwright.Page) {
	w.page = page
}

func (w *Worker) SetShouldStopCallback(callback func() bool) {
	w.shouldStop = callback
}

func (w *Worker) SetProgressCallback(callback func(message string, current, total int)) {
	w.progress = callback
}

// Execute 主执行入口，返回本次提交的申请数量
func (w *Worker) Execute() int {
	// 历史台账中的职位全部视为已处理
	for _, id := range w.ledger.SeenIDs() {
		w.seen[id] = struct{}{}
	}
	log.Infof("台账加载完成，历史记录%d条", w.ledger.Count())

	w.sendProgress("开始应用搜索筛选", -1, 0)
	NewFilterApplicator(w.page, w.filters, w.prompter).ApplyAll()

	log.Info("开始投递循环，Ctrl+C停止")
	var submitted int

	for !w.stopRequested() {
		cards, err := w.page.Locator(locators.JOB_LIST_SELECTOR).All()
		if err != nil || len(cards) == 0 {
			log.Warn("未找到职位卡片，请确认搜索结果列表可见")
			time.Sleep(3 * time.Second)
			continue
		}

		total := len(cards)
		w.sendProgress("本轮职位卡片已加载", 0, total)

		for i := 0; i < total; i++ {
			if w.stopRequested() {
				return submitted
			}

			// 重新获取卡片，避免元素过期
			cards, err = w.page.Locator(locators.JOB_LIST_SELECTOR).All()
			if err != nil || i >= len(cards) {
				break
			}

			if w.processCard(cards[i], i, total) {
				submitted++
				w.submittedSinceRefresh++
			}
		}

		w.maybeRefresh()
		w.scrollResults()
		time.Sleep(time.Second)
	}

	return submitted
}

// processCard 处理单个职位卡片，返回是否完成了一次提交。
// 交互类失败（点击、提取抛错）直接跳过且不落账，留待后续轮次重试。
func (w *Worker) processCard(card playwright.Locator, index, total int) bool {
	id, ok := extractJobID(card)
	if !ok {
		id = fallbackJobID(index)
	}
	if w.isSeen(id) {
		return false
	}

	// 站外已投递过的职位不打开，直接落账跳过
	if isRecentlyApplied(card) {
		log.Infof("跳过近期已投递职位: %s", id)
		w.record(id, model.StatusSkippedRecentlyApplied, "", "")
		return false
	}

	if err := card.ScrollIntoViewIfNeeded(); err != nil {
		return false
	}
	if err := card.Click(); err != nil {
		return false
	}
	time.Sleep(time.Second)

	title := getJobTitle(w.page)
	company := getJobCompany(w.page)
	w.sendProgress("正在处理: "+title, index+1, total)

	applyBtn, ok := Resolve(PageScope(w.page), easyApplyButtonChain)
	if !ok {
		log.Infof("无Easy Apply入口，跳过: %s | %s", company, title)
		w.record(id, model.StatusSkippedNoEasyApply, title, company)
		return false
	}

	if err := applyBtn.Click(); err != nil {
		return false
	}
	time.Sleep(time.Second)

	engine := NewWizardEngine(w.behavior, w.prompter)
	status := engine.Run(newApplyModal(w.page, w.defaults.Salary))

	log.Infof("申请结束: %s | %s | %s -> %s", id, company, title, status)
	w.record(id, status, title, company)
	return status == model.StatusSubmitted
}

// record 落账并标记已处理。落账失败仅告警，避免中断循环。
func (w *Worker) record(id, status, title, company string) {
	record := model.JobRecord{
		Status:    status,
		Title:     title,
		Company:   company,
		URL:       w.page.URL(),
		UpdatedAt: service.NowISO(),
	}
	if err := w.ledger.Record(id, record); err != nil {
		log.Errorf("台账写入失败: jobID=%s, err=%v", id, err)
	}
	w.seen[id] = struct{}{}
}

func (w *Worker) isSeen(id string) bool {
	if _, ok := w.seen[id]; ok {
		return true
	}
	return w.ledger.Contains(id)
}

// maybeRefresh 每提交N份后重载页面，缓解长时间运行的界面失真
func (w *Worker) maybeRefresh() {
	n := w.behavior.RefreshAfterSubmitted
	if n <= 0 || w.submittedSinceRefresh < n {
		return
	}
	log.Infof("已提交%d份申请，重载页面", w.submittedSinceRefresh)
	if _, err := w.page.Reload(); err != nil {
		log.Warnf("页面重载失败: %v", err)
		return
	}
	w.submittedSinceRefresh = 0
	time.Sleep(2 * time.Second)
}

// scrollResults 滚动结果容器触发加载更多，容器不存在时退回整页滚轮
func (w *Worker) scrollResults() {
	container := w.page.Locator(locators.RESULTS_CONTAINER)
	if count, err := container.Count(); err == nil && count > 0 {
		if _, err := container.First().Evaluate("el => el.scrollBy(0, 1200)", nil); err == nil {
			return
		}
	}
	w.page.Mouse().Wheel(0, 1200)
}

func (w *Worker) stopRequested() bool {
	return w.shouldStop != nil && w.shouldStop()
}

func (w *Worker) sendProgress(message string, current, total int) {
	if w.progress != nil {
		w.progress(message, current, total)
	}
}
