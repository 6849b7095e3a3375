package linkedin

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	locators "easy_apply_go/Locators"

	"github.com/playwright-community/playwright-go"
)

// 从卡片锚点href中解析站点数字ID
var jobViewPattern = regexp.MustCompile(`/jobs/view/(\d+)`)

// 已在站外投递过的卡片文案："applied"之后跟小数字或a/an量词加分钟/小时单位，
// 或紧凑的<n>m/<n>h形式。天级单位不算，那种卡片重新投递是合理的。
var recentlyAppliedPattern = regexp.MustCompile(`\bapplied\b.*\b(?:(?:\d{1,2}|an?) (?:minute|hour)s?|\d{1,2}[mh]) ago\b`)

// FallbackIDPrefix 无法提取稳定ID时的降级ID命名空间。
// 降级ID由位置和时间戳合成，跨运行甚至跨重渲染都不稳定。
const FallbackIDPrefix = "idx-"

// extractJobID 提取卡片的稳定职位ID。
// 依次尝试懒加载ID属性、普通ID属性、锚点href中的数字ID。
func extractJobID(card playwright.Locator) (string, bool) {
	if id, err := card.GetAttribute(locators.ATTR_OCCLUDABLE_JOB_ID); err == nil && id != "" {
		return id, true
	}
	if id, err := card.GetAttribute(locators.ATTR_JOB_ID); err == nil && id != "" {
		return id, true
	}

	anchor := card.Locator(locators.JOB_CARD_ANCHOR).First()
	if href, err := anchor.GetAttribute("href"); err == nil {
		if id := parseJobIDFromHref(href); id != "" {
			return id, true
		}
	}
	return "", false
}

func parseJobIDFromHref(href string) string {
	match := jobViewPattern.FindStringSubmatch(href)
	if match == nil {
		return ""
	}
	return match[1]
}

// fallbackJobID 合成降级ID（位置+时间戳）
func fallbackJobID(index int) string {
	return fmt.Sprintf("%s%d-%d", FallbackIDPrefix, index, time.Now().Unix())
}

// isRecentlyApplied 卡片是否标注了近期已投递（分钟/小时级）
func isRecentlyApplied(card playwright.Locator) bool {
	text, err := card.InnerText()
	if err != nil {
		return false
	}
	return matchesRecentlyApplied(text)
}

func matchesRecentlyApplied(text string) bool {
	return recentlyAppliedPattern.MatchString(normalizeCardText(text))
}

// normalizeCardText 折叠空白并转小写
func normalizeCardText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// 职位详情面板的岗位名称候选
var jobTitleChain = []Descriptor{
	CSS(locators.JOB_TITLE_TOP_CARD),
	CSS("h1"),
	CSS("h2"),
}

// 职位详情面板的公司名称候选
var jobCompanyChain = []Descriptor{
	CSS(locators.COMPANY_TOP_CARD),
	CSS(locators.COMPANY_TOP_CARD_ALT),
	CSS(locators.COMPANY_LINK),
}

// getJobTitle 读取详情面板的岗位名称，尽力而为，取不到返回空串
func getJobTitle(page playwright.Page) string {
	return firstVisibleText(PageScope(page), jobTitleChain)
}

// getJobCompany 读取详情面板的公司名称，尽力而为，取不到返回空串
func getJobCompany(page playwright.Page) string {
	return firstVisibleText(PageScope(page), jobCompanyChain)
}

func firstVisibleText(scope Scope, candidates []Descriptor) string {
	element, ok := Resolve(scope, candidates)
	if !ok {
		return ""
	}
	text, err := element.TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
