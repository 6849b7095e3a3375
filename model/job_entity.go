package model

import (
	"time"
)

// JobRecordEntity 职位处理记录实体类（MySQL镜像表）
type JobRecordEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	JobID     string    `gorm:"column:job_id;uniqueIndex;size:64"` // 职位ID（站点ID或idx-降级ID）
	Status    string    `gorm:"column:status;size:32"`             // 处理结果状态
	Title     string    `gorm:"column:title;size:255"`             // 岗位名称
	Company   string    `gorm:"column:company;size:255"`           // 公司名称
	URL       string    `gorm:"column:url;size:1024"`              // 详情页链接
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (JobRecordEntity) TableName() string {
	return "linkedin_job_record"
}
