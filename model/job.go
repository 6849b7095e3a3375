package model

// 职位处理结果状态
const (
	StatusSubmitted              = "submitted"
	StatusClosed                 = "closed"
	StatusTimeout                = "timeout"
	StatusSkippedNoEasyApply     = "skipped_no_easy_apply"
	StatusSkippedRecentlyApplied = "skipped_recently_applied"
)

// JobRecord 单个职位的处理结果
type JobRecord struct {
	Status    string `json:"status"`            //处理结果状态
	Title     string `json:"title,omitempty"`   //岗位名称
	Company   string `json:"company,omitempty"` //公司名称
	URL       string `json:"url"`               //处理时的详情页链接
	UpdatedAt string `json:"updated_at"`        //记录时间（ISO-8601，秒级）
}

// Ledger 台账文档，与持久化文件一一对应
type Ledger struct {
	Jobs map[string]JobRecord `json:"jobs"`
}

// NewLedger 创建空台账
func NewLedger() *Ledger {
	return &Ledger{Jobs: make(map[string]JobRecord)}
}
