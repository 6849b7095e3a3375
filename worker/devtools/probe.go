package devtools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

const probeTimeout = 10 * time.Second

// ListPages 通过CDP列出调试浏览器中已打开的页面目标
func ListPages(cdpURL string) ([]*target.Info, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, cdpURL)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	infos, err := chromedp.Targets(browserCtx)
	if err != nil {
		return nil, fmt.Errorf("获取调试目标失败: %w", err)
	}

	pages := make([]*target.Info, 0, len(infos))
	for _, info := range infos {
		if info.Type == "page" {
			pages = append(pages, info)
		}
	}
	return pages, nil
}

// HasJobsTab 目标列表中是否存在LinkedIn职位搜索标签页
func HasJobsTab(pages []*target.Info) bool {
	for _, page := range pages {
		if strings.Contains(page.URL, "linkedin.com/jobs") {
			return true
		}
	}
	return false
}

// ReportPages 输出调试端点当前打开的页面，辅助操作员定位问题
func ReportPages(cdpURL string) {
	pages, err := ListPages(cdpURL)
	if err != nil {
		log.Warnf("调试端点探测失败（%s）: %v", cdpURL, err)
		return
	}

	log.Infof("调试浏览器当前打开%d个页面:", len(pages))
	for _, page := range pages {
		log.Infof("- %s (%s)", page.Title, page.URL)
	}
	if !HasJobsTab(pages) {
		log.Warn("其中没有LinkedIn职位搜索页")
	}
}
