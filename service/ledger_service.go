package service

import (
	"fmt"
	"time"

	"easy_apply_go/model"
	"easy_apply_go/repository"

	log "github.com/sirupsen/logrus"
)

// LedgerService 台账服务。独占持有内存台账，负责去重判断与落盘，
// 可选地把每条结果镜像写入MySQL。
type LedgerService struct {
	repo    repository.LedgerRepository
	records repository.JobRecordRepository // 可为nil，表示未启用数据库镜像
	ledger  *model.Ledger
}

func NewLedgerService(repo repository.LedgerRepository, records repository.JobRecordRepository) *LedgerService {
	return &LedgerService{
		repo:    repo,
		records: records,
		ledger:  repo.Load(),
	}
}

// Contains 职位ID是否已有处理记录（跨历史运行）
func (s *LedgerService) Contains(id string) bool {
	_, ok := s.ledger.Jobs[id]
	return ok
}

// Count 台账中的记录总数
func (s *LedgerService) Count() int {
	return len(s.ledger.Jobs)
}

// SeenIDs 返回全部已处理职位ID，用于初始化本轮去重集合
func (s *LedgerService) SeenIDs() []string {
	ids := make([]string, 0, len(s.ledger.Jobs))
	for id := range s.ledger.Jobs {
		ids = append(ids, id)
	}
	return ids
}

// Record 写入一条处理结果并立即落盘。返回前台账已持久化，
// 崩溃时最多丢失当前正在处理的职位。
func (s *LedgerService) Record(id string, record model.JobRecord) error {
	if record.UpdatedAt == "" {
		record.UpdatedAt = NowISO()
	}
	s.ledger.Jobs[id] = record

	if err := s.repo.Save(s.ledger); err != nil {
		return fmt.Errorf("台账落盘失败: %w", err)
	}

	s.mirrorToDatabase(id, record)
	return nil
}

// mirrorToDatabase 同步写入数据库镜像，失败仅告警不中断
func (s *LedgerService) mirrorToDatabase(id string, record model.JobRecord) {
	if s.records == nil {
		return
	}

	entity := &model.JobRecordEntity{
		JobID:   id,
		Status:  record.Status,
		Title:   record.Title,
		Company: record.Company,
		URL:     record.URL,
	}
	if err := s.records.SaveOrUpdate(entity); err != nil {
		log.Warnf("职位记录写入数据库失败: jobID=%s, err=%v", id, err)
	}
}

// NowISO 当前时间的ISO-8601秒级表示
func NowISO() string {
	return time.Now().Format("2006-01-02T15:04:05")
}
