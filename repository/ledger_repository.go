package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"easy_apply_go/model"

	log "github.com/sirupsen/logrus"
)

// LedgerRepository 台账文件仓储接口
type LedgerRepository interface {
	Load() *model.Ledger
	Save(ledger *model.Ledger) error
	Path() string
}

type fileLedgerRepository struct {
	path string
}

func NewLedgerRepository(path string) LedgerRepository {
	return &fileLedgerRepository{path: path}
}

func (r *fileLedgerRepository) Path() string {
	return r.path
}

// Load 读取台账文件。文件缺失或内容损坏均按空台账处理，不向上抛错。
func (r *fileLedgerRepository) Load() *model.Ledger {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("读取台账文件失败，按空台账处理: %v", err)
		}
		return model.NewLedger()
	}

	var ledger model.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		log.Warnf("台账文件解析失败，按空台账处理: %v", err)
		return model.NewLedger()
	}
	if ledger.Jobs == nil {
		ledger.Jobs = make(map[string]model.JobRecord)
	}
	return &ledger
}

// Save 全量重写台账文件。键有序、两空格缩进，首次写入时创建父目录。
func (r *fileLedgerRepository) Save(ledger *model.Ledger) error {
	dir := filepath.Dir(r.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建台账目录失败: %w", err)
		}
	}

	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化台账失败: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("写入台账文件失败: %w", err)
	}
	return nil
}
