package linkedin

import (
	"fmt"
	"sync"
	"time"

	"easy_apply_go/service"
	"easy_apply_go/worker/playwright_manager"
)

// JobProgressMessage 任务进度消息
type JobProgressMessage struct {
	Platform  string `json:"platform"`
	Type      string `json:"type"` // info, warning, error, progress, success
	Message   string `json:"message"`
	Current   *int   `json:"current,omitempty"`
	Total     *int   `json:"total,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// LinkedInJobService LinkedIn投递任务服务
type LinkedInJobService struct {
	playwrightManager *playwright_manager.PlaywrightManager
	ledgerService     *service.LedgerService
	workerProvider    func() *Worker

	running     bool
	shouldStop  bool
	statusMutex sync.RWMutex
	platform    string
}

func NewLinkedInJobService(
	playwrightManager *playwright_manager.PlaywrightManager,
	ledgerService *service.LedgerService,
	workerProvider func() *Worker,
) *LinkedInJobService {
	return &LinkedInJobService{
		playwrightManager: playwrightManager,
		ledgerService:     ledgerService,
		workerProvider:    workerProvider,
		platform:          "linkedin",
	}
}

// ExecuteDelivery 执行投递任务
func (s *LinkedInJobService) ExecuteDelivery(progressCallback func(message JobProgressMessage)) error {
	s.statusMutex.Lock()
	if s.running {
		s.statusMutex.Unlock()
		progressCallback(s.message("warning", "任务已在运行中"))
		return nil
	}
	s.running = true
	s.shouldStop = false
	s.statusMutex.Unlock()

	defer func() {
		s.statusMutex.Lock()
		s.running = false
		s.shouldStop = false
		s.statusMutex.Unlock()
	}()

	// 定位职位搜索标签页，找不到时提示操作员并重试
	page, err := s.playwrightManager.AcquireJobsPage()
	if err != nil {
		progressCallback(s.message("error", "获取LinkedIn职位页失败: "+err.Error()))
		return err
	}

	worker := s.workerProvider()
	worker.SetPage(page)
	worker.SetShouldStopCallback(func() bool {
		s.statusMutex.RLock()
		defer s.statusMutex.RUnlock()
		return s.shouldStop
	})
	worker.SetProgressCallback(func(message string, current, total int) {
		if current >= 0 && total > 0 {
			msg := s.message("progress", message)
			msg.Current = &current
			msg.Total = &total
			progressCallback(msg)
		} else {
			progressCallback(s.message("info", message))
		}
	})

	progressCallback(s.message("info", fmt.Sprintf("台账加载完成，历史处理记录%d条", s.ledgerService.Count())))
	progressCallback(s.message("info", "开始投递任务..."))
	submitted := worker.Execute()
	progressCallback(s.message("success", fmt.Sprintf("投递任务结束，本次提交申请数：%d", submitted)))

	return nil
}

// StopDelivery 停止投递任务
func (s *LinkedInJobService) StopDelivery() error {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	if !s.running {
		return nil
	}
	s.shouldStop = true
	return nil
}

// IsRunning 任务是否运行中
func (s *LinkedInJobService) IsRunning() bool {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()
	return s.running
}

// GetPlatformName 平台名称
func (s *LinkedInJobService) GetPlatformName() string {
	return s.platform
}

func (s *LinkedInJobService) message(msgType, message string) JobProgressMessage {
	return JobProgressMessage{
		Platform:  s.platform,
		Type:      msgType,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
