package linkedin

import (
	"fmt"
	"time"

	locators "easy_apply_go/Locators"
	"easy_apply_go/utils"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// 筛选生效后等待重渲染的时间上限
const settleCeiling = 5 * time.Second

// 位置输入框候选
var locationInputChain = []Descriptor{
	CSS(locators.LOCATION_INPUT_CITY),
	CSS(locators.LOCATION_INPUT_LABEL),
	CSS(locators.LOCATION_INPUT_PLACEHOLDER),
}

// 位置清除按钮候选
var clearLocationChain = []Descriptor{
	CSS(locators.CLEAR_LOCATION_BUTTON),
	CSS(locators.CLEAR_BUTTON),
	CSS(locators.CLEAR_SEARCH_BUTTON),
}

// 顶栏"发布时间"筛选按钮候选，先在筛选栏容器内找，再全局找
var datePostedPillChain = []Descriptor{
	CSS(locators.FILTER_BAR + " button:has-text('Date posted')"),
	Role(playwright.AriaRoleButton, "Date posted", false),
	Text("Date posted", false),
}

// 顶栏Easy Apply独立开关候选
var easyApplyToggleChain = []Descriptor{
	Role(playwright.AriaRoleButton, "Easy Apply", true),
	CSS(locators.FILTER_BAR + " button:has-text('Easy Apply')"),
}

// 顶栏"距离"筛选按钮候选
var distancePillChain = []Descriptor{
	Role(playwright.AriaRoleButton, "Distance", true),
	CSS(locators.FILTER_BAR + " button:has-text('Distance')"),
}

// 全部筛选面板入口候选
var allFiltersChain = []Descriptor{
	CSS(locators.SEARCH_TOOLBAR + " button:has-text('All filters')"),
	CSS(locators.FILTER_BAR + " button:has-text('All filters')"),
	Role(playwright.AriaRoleButton, "All filters", false),
	Role(playwright.AriaRoleButton, "Filters", false),
}

// FilterApplicator 把当前搜索结果调整为FilterSpec描述的状态。
// 四个筛选相互独立，单个失败不阻止其余筛选继续尝试。
type FilterApplicator struct {
	page     playwright.Page
	scope    Scope
	spec     *FilterSpec
	prompter utils.Prompter
}

func NewFilterApplicator(page playwright.Page, spec *FilterSpec, prompter utils.Prompter) *FilterApplicator {
	return &FilterApplicator{
		page:     page,
		scope:    PageScope(page),
		spec:     spec,
		prompter: prompter,
	}
}

// ApplyAll 依次应用全部筛选，返回失败清单。
// 存在失败时先提示操作员手工补齐并阻塞等待确认，再返回。
func (f *FilterApplicator) ApplyAll() []string {
	var failures []string

	record := func(name string, err error) {
		if err != nil {
			log.Warnf("筛选设置失败: %s (%v)", name, err)
			failures = append(failures, fmt.Sprintf("%s (%v)", name, err))
		}
	}

	if f.spec.Location != "" {
		before := f.firstCardSnapshot()
		_, err := f.applyLocation(f.spec.Location)
		record("location", err)
		f.settleAfterFilter(before)
	}

	if f.spec.ClearDistance {
		before := f.firstCardSnapshot()
		record("distance", f.clearDistance())
		f.settleAfterFilter(before)
	}

	if f.spec.TimePosted != "" {
		before := f.firstCardSnapshot()
		record("time_posted", f.applyDatePosted(f.spec.TimePosted, f.spec.UseAllFiltersPanel))
		f.settleAfterFilter(before)
	}

	if f.spec.EasyApplyOnly {
		before := f.firstCardSnapshot()
		record("easy_apply", f.applyEasyApplyOnly())
		f.settleAfterFilter(before)
	}

	if len(failures) > 0 {
		log.Warn("部分筛选条件未能自动设置:")
		for _, item := range failures {
			log.Warnf("- %s", item)
		}
		f.prompter.Pause("请在浏览器中手工补齐上述筛选条件")
	}

	return failures
}

// applyLocation 设置工作地点。清除旧值，逐字符输入触发联想，
// 优先点精确匹配的联想项，否则点首项，否则回车提交字面文本。
// 返回是否提交了值。
func (f *FilterApplicator) applyLocation(location string) (bool, error) {
	input, ok := Resolve(f.scope, locationInputChain)
	if !ok {
		return false, fmt.Errorf("未找到位置输入框")
	}

	// 清除已有值：清除按钮 > 全选删除 > 空值覆盖
	cleared := false
	if clearBtn, ok := Resolve(f.scope, clearLocationChain); ok {
		if err := clearBtn.Click(); err == nil {
			cleared = true
		}
	}

	if err := input.Click(); err != nil {
		return false, fmt.Errorf("点击位置输入框失败: %w", err)
	}
	if !cleared {
		// macOS和Windows/Linux的快捷键都试一遍
		for _, combo := range []string{"Meta+A", "Control+A"} {
			if err := input.Press(combo); err == nil {
				input.Press("Backspace")
			}
		}
	}
	if err := input.Fill(""); err != nil {
		return false, fmt.Errorf("清空位置输入框失败: %w", err)
	}

	// 联想列表只响应真实键入事件，必须逐字符输入
	if err := input.PressSequentially(location, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(25),
	}); err != nil {
		return false, fmt.Errorf("输入地点失败: %w", err)
	}
	time.Sleep(300 * time.Millisecond)

	suggestions := f.page.Locator(locators.LOCATION_SUGGESTIONS)
	if count, err := suggestions.Count(); err == nil && count > 0 {
		for _, candidate := range locationCandidates(location) {
			match := suggestions.Filter(playwright.LocatorFilterOptions{HasText: candidate})
			if n, err := match.Count(); err != nil || n == 0 {
				continue
			}
			first := match.First()
			if visible, err := first.IsVisible(); err == nil && visible {
				return true, first.Click()
			}
		}

		// 退而求其次，点首个联想项
		first := suggestions.First()
		if visible, err := first.IsVisible(); err == nil && visible {
			return true, first.Click()
		}
	}

	return true, input.Press("Enter")
}

// applyDatePosted 设置发布时间筛选，面板和顶栏两条独立路径
func (f *FilterApplicator) applyDatePosted(label string, viaPanel bool) error {
	if viaPanel {
		return f.applyDatePostedViaPanel(label)
	}
	return f.applyDatePostedViaTopBar(label)
}

func (f *FilterApplicator) applyDatePostedViaTopBar(label string) error {
	pill, ok := Resolve(f.scope, datePostedPillChain)
	if !ok {
		return fmt.Errorf("未找到顶栏Date posted按钮")
	}
	if err := pill.Click(); err != nil {
		return fmt.Errorf("打开Date posted下拉失败: %w", err)
	}
	time.Sleep(300 * time.Millisecond)

	option, ok := Resolve(f.scope, []Descriptor{
		Role(playwright.AriaRoleRadio, label, false),
		Text(label, false),
	})
	if !ok {
		return fmt.Errorf("未找到发布时间选项: %s", label)
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("选择发布时间失败: %w", err)
	}

	// 下拉内的确认按钮，存在就点
	if applyBtn, ok := Resolve(f.scope, []Descriptor{
		Role(playwright.AriaRoleButton, "Show results", false),
		Role(playwright.AriaRoleButton, "Apply", false),
	}); ok {
		return applyBtn.Click()
	}
	return nil
}

func (f *FilterApplicator) applyDatePostedViaPanel(label string) error {
	panel, err := f.openFiltersPanel()
	if err != nil {
		return err
	}

	section, err := f.panelSection(panel, "Date posted")
	if err != nil {
		return err
	}
	f.expandSection(section)

	// 先按内部取值精确定位，查不到再退回按标签文本点击
	if value, ok := timePostedValue(label); ok && value != "" {
		option := section.Locator(fmt.Sprintf("input[value='%s']", value))
		if count, err := option.Count(); err == nil && count > 0 {
			if err := f.selectPanelInput(section, option.First()); err == nil {
				return f.clickShowResults(panel)
			}
		}
	}

	option, ok := Resolve(LocatorScope(section), []Descriptor{
		Role(playwright.AriaRoleRadio, label, false),
		Text(label, false),
	})
	if !ok {
		return fmt.Errorf("面板中未找到发布时间选项: %s", label)
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("面板中选择发布时间失败: %w", err)
	}
	return f.clickShowResults(panel)
}

// applyEasyApplyOnly 开启仅Easy Apply筛选。
// 开关只开不关：已开启时不再点击，重复调用是幂等的。
func (f *FilterApplicator) applyEasyApplyOnly() error {
	if toggle, ok := Resolve(f.scope, easyApplyToggleChain); ok {
		pressed, err := toggle.GetAttribute("aria-pressed")
		if err == nil && pressed == "true" {
			return nil
		}
		return toggle.Click()
	}

	// 顶栏没有独立开关，走全部筛选面板
	panel, err := f.openFiltersPanel()
	if err != nil {
		return err
	}

	section, err := f.panelSection(panel, "Easy Apply")
	if err != nil {
		return err
	}
	f.expandSection(section)

	checkbox := section.Locator("input[type='checkbox']")
	if count, err := checkbox.Count(); err != nil || count == 0 {
		checkbox = panel.Locator("label:has-text('Easy Apply') input[type='checkbox']")
		if count, err := checkbox.Count(); err != nil || count == 0 {
			return fmt.Errorf("面板中未找到Easy Apply复选框")
		}
	}

	first := checkbox.First()
	if checked, err := first.IsChecked(); err == nil && !checked {
		if err := f.selectPanelInput(section, first); err != nil {
			return fmt.Errorf("勾选Easy Apply失败: %w", err)
		}
	}
	return f.clickShowResults(panel)
}

// clearDistance 把距离筛选恢复为不限。顶栏控件优先，其次走面板。
func (f *FilterApplicator) clearDistance() error {
	opened := false
	var scope Scope = f.scope

	if pill, ok := Resolve(f.scope, distancePillChain); ok {
		if err := pill.Click(); err == nil {
			opened = true
			time.Sleep(300 * time.Millisecond)
		}
	}

	if !opened {
		panel, err := f.openFiltersPanel()
		if err != nil {
			return err
		}
		section, err := f.panelSection(panel, "Distance")
		if err != nil {
			return err
		}
		f.expandSection(section)
		scope = LocatorScope(section)
	}

	option, ok := Resolve(scope, []Descriptor{
		Role(playwright.AriaRoleRadio, "Any distance", false),
		Text("Any distance", false),
		Role(playwright.AriaRoleRadio, "Any", false),
	})
	if !ok {
		return fmt.Errorf("未找到Any distance选项")
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("选择Any distance失败: %w", err)
	}

	if applyBtn, ok := Resolve(f.scope, []Descriptor{
		Role(playwright.AriaRoleButton, "Show results", false),
		Role(playwright.AriaRoleButton, "Apply", false),
	}); ok {
		return applyBtn.Click()
	}
	return nil
}

// openFiltersPanel 打开全部筛选面板。
// 面板识别为首个带"显示结果"动作的dialog元素，退回带Filters标签的区域。
func (f *FilterApplicator) openFiltersPanel() (playwright.Locator, error) {
	trigger, ok := Resolve(f.scope, allFiltersChain)
	if !ok {
		return nil, fmt.Errorf("未找到All filters入口")
	}
	if err := trigger.Click(); err != nil {
		return nil, fmt.Errorf("打开筛选面板失败: %w", err)
	}
	time.Sleep(500 * time.Millisecond)

	dialogs, err := f.page.Locator(locators.FILTER_PANEL_DIALOG).All()
	if err == nil {
		for _, dialog := range dialogs {
			showBtn := dialog.Locator(locators.SHOW_RESULTS_BUTTON)
			if count, err := showBtn.Count(); err == nil && count > 0 {
				return dialog, nil
			}
		}
	}

	region := f.page.GetByRole(*playwright.AriaRoleRegion, playwright.PageGetByRoleOptions{Name: "Filters"})
	if count, err := region.Count(); err == nil && count > 0 {
		return region.First(), nil
	}

	return nil, fmt.Errorf("筛选面板未出现")
}

// panelSection 按标题文本定位面板中的筛选区块
func (f *FilterApplicator) panelSection(panel playwright.Locator, header string) (playwright.Locator, error) {
	sections := panel.Locator(locators.FILTER_PANEL_SECTION).Filter(playwright.LocatorFilterOptions{
		HasText: header,
	})
	if count, err := sections.Count(); err != nil || count == 0 {
		return nil, fmt.Errorf("面板中未找到%s区块", header)
	}
	return sections.First(), nil
}

// expandSection 区块折叠时展开它
func (f *FilterApplicator) expandSection(section playwright.Locator) {
	expander := section.Locator("button[aria-expanded='false']")
	if count, err := expander.Count(); err == nil && count > 0 {
		expander.First().Click()
		time.Sleep(200 * time.Millisecond)
	}
}

// selectPanelInput 选中面板中的radio/checkbox。
// input本体通常视觉隐藏，优先点对应label。
func (f *FilterApplicator) selectPanelInput(section playwright.Locator, input playwright.Locator) error {
	if id, err := input.GetAttribute("id"); err == nil && id != "" {
		label := section.Locator(fmt.Sprintf("label[for='%s']", id))
		if count, err := label.Count(); err == nil && count > 0 {
			return label.First().Click()
		}
	}
	return input.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
}

// clickShowResults 触发面板的"显示结果"动作
func (f *FilterApplicator) clickShowResults(panel playwright.Locator) error {
	showBtn := panel.Locator(locators.SHOW_RESULTS_BUTTON)
	if count, err := showBtn.Count(); err != nil || count == 0 {
		return fmt.Errorf("面板中未找到Show results按钮")
	}
	return showBtn.First().Click()
}

// firstCardSnapshot 记录首个结果卡片的文本，作为重渲染判据
func (f *FilterApplicator) firstCardSnapshot() string {
	card := f.page.Locator(locators.JOB_LIST_SELECTOR)
	if count, err := card.Count(); err != nil || count == 0 {
		return ""
	}
	text, err := card.First().TextContent()
	if err != nil {
		return ""
	}
	return text
}

// settleAfterFilter 等待结果列表完成重渲染：
// 最小等待时间已过或首卡片文本发生变化，先满足者即可，上限5秒。
// 避免下一个筛选与进行中的重渲染竞争。
func (f *FilterApplicator) settleAfterFilter(before string) {
	start := time.Now()
	utils.PollUntil(settleCeiling, 200*time.Millisecond, func() bool {
		if time.Since(start) >= f.spec.SettleMin {
			return true
		}
		return f.firstCardSnapshot() != before
	})
}
