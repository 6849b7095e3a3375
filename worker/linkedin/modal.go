package linkedin

import (
	"fmt"
	"strings"

	locators "easy_apply_go/Locators"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// 薪酬类输入框的关键词表（含本地化写法）
var salaryKeywords = []string{
	"salary", "compensation", "pay", "rate", "wage",
	"maaş", "ücret",
}

// 关注公司控件的关键词表
var followKeywords = []string{"follow", "company", "employer"}

// pwApplyModal 基于playwright的申请弹窗实现
type pwApplyModal struct {
	page   playwright.Page
	root   playwright.Locator
	salary string
}

func newApplyModal(page playwright.Page, salary string) *pwApplyModal {
	return &pwApplyModal{
		page:   page,
		root:   page.Locator(locators.APPLY_DIALOG).First(),
		salary: salary,
	}
}

func (m *pwApplyModal) Visible() bool {
	visible, err := m.root.IsVisible()
	return err == nil && visible
}

func (m *pwApplyModal) ButtonVisible(label string) bool {
	button := m.button(label)
	if count, err := button.Count(); err != nil || count == 0 {
		return false
	}
	visible, err := button.First().IsVisible()
	return err == nil && visible
}

func (m *pwApplyModal) ClickButton(label string) error {
	button := m.button(label)
	if count, err := button.Count(); err != nil || count == 0 {
		return fmt.Errorf("未找到%s按钮", label)
	}
	return button.First().Click()
}

// ClickDoneIfPresent 提交后的Done确认按钮出现在弹窗之外，按整页查找
func (m *pwApplyModal) ClickDoneIfPresent() {
	done := m.page.Locator("button:has-text('Done')")
	if count, err := done.Count(); err != nil || count == 0 {
		return
	}
	first := done.First()
	if visible, err := first.IsVisible(); err == nil && visible {
		first.Click()
	}
}

func (m *pwApplyModal) HasValidationError() bool {
	feedback := m.root.Locator(locators.INLINE_FEEDBACK)
	if count, err := feedback.Count(); err != nil || count == 0 {
		return false
	}
	visible, err := feedback.First().IsVisible()
	return err == nil && visible
}

// FillDefaults 扫描可见的文本/数字输入框，把首个未填写的薪酬类
// 字段填上配置的默认薪资。已有值的字段永不覆盖。
func (m *pwApplyModal) FillDefaults() {
	if m.salary == "" {
		return
	}

	inputs, err := m.root.Locator(locators.APPLY_DIALOG_INPUTS).All()
	if err != nil {
		return
	}

	for _, input := range inputs {
		if visible, err := input.IsVisible(); err != nil || !visible {
			continue
		}
		if value, err := input.InputValue(); err != nil || value != "" {
			continue
		}
		if !containsAnyKeyword(m.fieldLabelText(input), salaryKeywords) {
			continue
		}
		if err := input.Fill(m.salary); err == nil {
			log.Infof("已自动填充薪资字段: %s", m.salary)
		}
		return // 只填首个匹配字段
	}
}

// fieldLabelText 汇总输入框自身属性与配对label的文本，用于关键词匹配
func (m *pwApplyModal) fieldLabelText(input playwright.Locator) string {
	var parts []string
	for _, attr := range []string{"aria-label", "placeholder", "name", "id"} {
		if value, err := input.GetAttribute(attr); err == nil && value != "" {
			parts = append(parts, value)
		}
	}

	if id, err := input.GetAttribute("id"); err == nil && id != "" {
		label := m.root.Locator(fmt.Sprintf("label[for='%s']", id))
		if count, err := label.Count(); err == nil && count > 0 {
			if text, err := label.First().TextContent(); err == nil {
				parts = append(parts, text)
			}
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// UnfollowCompany 取消勾选"关注公司"。
// 依次尝试直接取消、点配对label、强制点击，任一方法报告未勾选即停。
func (m *pwApplyModal) UnfollowCompany() {
	checkbox, ok := m.findFollowCheckbox()
	if !ok {
		return
	}
	checked, err := checkbox.IsChecked()
	if err != nil || !checked {
		return
	}

	if err := checkbox.Uncheck(); err == nil {
		if c, err := checkbox.IsChecked(); err == nil && !c {
			return
		}
	}

	if id, err := checkbox.GetAttribute("id"); err == nil && id != "" {
		label := m.root.Locator(fmt.Sprintf("label[for='%s']", id))
		if count, err := label.Count(); err == nil && count > 0 {
			label.First().Click()
			if c, err := checkbox.IsChecked(); err == nil && !c {
				return
			}
		}
	}

	checkbox.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
}

// findFollowCheckbox 定位关注公司复选框。
// 稳定ID优先，其次可访问角色，最后扫描label关键词。
// 复选框本体多为视觉隐藏，按存在性而非可见性判定。
func (m *pwApplyModal) findFollowCheckbox() (playwright.Locator, bool) {
	byID := m.root.Locator(locators.FOLLOW_COMPANY_CHECKBOX)
	if count, err := byID.Count(); err == nil && count > 0 {
		return byID.First(), true
	}

	byRole := m.root.GetByRole(*playwright.AriaRoleCheckbox, playwright.LocatorGetByRoleOptions{Name: "follow"})
	if count, err := byRole.Count(); err == nil && count > 0 {
		return byRole.First(), true
	}

	labels, err := m.root.Locator("label").All()
	if err != nil {
		return nil, false
	}
	for _, label := range labels {
		text, err := label.TextContent()
		if err != nil || !containsAnyKeyword(strings.ToLower(text), followKeywords) {
			continue
		}
		forID, err := label.GetAttribute("for")
		if err != nil || forID == "" {
			continue
		}
		input := m.root.Locator(fmt.Sprintf("input[type='checkbox']#%s", forID))
		if count, err := input.Count(); err == nil && count > 0 {
			return input.First(), true
		}
	}
	return nil, false
}

func (m *pwApplyModal) button(label string) playwright.Locator {
	return m.root.Locator(fmt.Sprintf("button:has-text('%s')", label))
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
