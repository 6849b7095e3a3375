package repository

import (
	"time"

	"easy_apply_go/model"

	"gorm.io/gorm"
)

// JobRecordRepository 职位处理记录仓储接口（MySQL镜像）
type JobRecordRepository interface {
	SaveOrUpdate(record *model.JobRecordEntity) error
	FindAll() ([]*model.JobRecordEntity, error)
}

type jobRecordRepository struct {
	db *gorm.DB
}

func NewJobRecordRepository(db *gorm.DB) JobRecordRepository {
	return &jobRecordRepository{db: db}
}

// SaveOrUpdate 按job_id去重写入，已存在则更新状态字段
func (r *jobRecordRepository) SaveOrUpdate(record *model.JobRecordEntity) error {
	var existing model.JobRecordEntity
	result := r.db.Where("job_id = ?", record.JobID).First(&existing)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			record.CreatedAt = time.Now()
			record.UpdatedAt = time.Now()
			return r.db.Create(record).Error
		}
		return result.Error
	}

	existing.Status = record.Status
	existing.Title = record.Title
	existing.Company = record.Company
	existing.URL = record.URL
	existing.UpdatedAt = time.Now()
	return r.db.Save(&existing).Error
}

// FindAll 查询全部记录，启动时核对镜像规模用
func (r *jobRecordRepository) FindAll() ([]*model.JobRecordEntity, error) {
	var records []*model.JobRecordEntity
	result := r.db.Order("updated_at DESC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
