// worker/playwright_manager/playwright_manager.go
package playwright_manager

import (
	"fmt"
	"strings"

	"easy_apply_go/utils"
	"easy_apply_go/worker/devtools"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// 页面操作的默认超时（毫秒）。定位器的隐式等待以它为上限。
const defaultTimeoutMillis = 5000

// PlaywrightManager 浏览器自动化管理器。
// 不启动也不拥有浏览器进程，只通过远程调试端点接入已登录的会话。
type PlaywrightManager struct {
	playwright *playwright.Playwright
	browser    playwright.Browser

	cdpURL   string
	jobsPage playwright.Page
	prompter utils.Prompter
}

func NewPlaywrightManager(cdpURL string, prompter utils.Prompter) *PlaywrightManager {
	return &PlaywrightManager{
		cdpURL:   cdpURL,
		prompter: prompter,
	}
}

// Init 接入远程调试浏览器
func (pm *PlaywrightManager) Init() error {
	log.Info("========================================")
	log.Info("  接入远程调试浏览器")
	log.Info("========================================")

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("启动Playwright失败: %v", err)
	}
	pm.playwright = pw

	log.Infof("连接调试端点 %s ...", pm.cdpURL)
	browser, err := pw.Chromium.ConnectOverCDP(pm.cdpURL)
	if err != nil {
		return fmt.Errorf("连接调试浏览器失败: %v", err)
	}
	pm.browser = browser

	log.Info("✓ 已接入调试浏览器")
	return nil
}

// AcquireJobsPage 定位LinkedIn职位搜索标签页并置前。
// 找不到时输出端点诊断并提示操作员打开页面后重试，直到拿到为止。
func (pm *PlaywrightManager) AcquireJobsPage() (playwright.Page, error) {
	if pm.browser == nil {
		return nil, fmt.Errorf("浏览器未接入")
	}

	for {
		if page := pm.findJobsPage(); page != nil {
			if err := page.BringToFront(); err != nil {
				log.Warnf("置前职位页失败: %v", err)
			}
			page.SetDefaultTimeout(defaultTimeoutMillis)
			pm.jobsPage = page
			log.Infof("✓ 已定位职位搜索页: %s", page.URL())
			return page, nil
		}

		devtools.ReportPages(pm.cdpURL)
		pm.prompter.Pause("未找到LinkedIn职位搜索标签页，请在调试浏览器中打开 https://www.linkedin.com/jobs/")
	}
}

// findJobsPage 在所有上下文的所有页面中查找职位搜索页
func (pm *PlaywrightManager) findJobsPage() playwright.Page {
	for _, context := range pm.browser.Contexts() {
		for _, page := range context.Pages() {
			if strings.Contains(page.URL(), "linkedin.com/jobs") {
				return page
			}
		}
	}
	return nil
}

// GetJobsPage 获取已定位的职位页
func (pm *PlaywrightManager) GetJobsPage() playwright.Page {
	return pm.jobsPage
}

// Close 清理资源。浏览器进程归操作员所有，只断开连接不关闭页面。
func (pm *PlaywrightManager) Close() {
	log.Info("开始关闭Playwright管理器...")

	if pm.browser != nil {
		pm.browser.Close()
		log.Info("已断开调试浏览器连接")
	}
	if pm.playwright != nil {
		pm.playwright.Stop()
		log.Info("Playwright实例已关闭")
	}

	log.Info("Playwright管理器关闭完成")
}
