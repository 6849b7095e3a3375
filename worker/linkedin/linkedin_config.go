package linkedin

import (
	"strings"
	"time"

	"easy_apply_go/config"
)

// FilterSpec 搜索筛选规格，运行期间只读
type FilterSpec struct {
	Location           string // 工作地点，空则不设置
	TimePosted         string // 发布时间标签（Past 24 hours等），空则不设置
	ClearDistance      bool   // 清除距离筛选
	EasyApplyOnly      bool   // 仅Easy Apply职位
	UseAllFiltersPanel bool   // 日期筛选走全部筛选面板
	SettleMin          time.Duration
}

// BehaviorSpec 投递行为规格，运行期间只读
type BehaviorSpec struct {
	PauseOnUnfilled       bool
	MaxIdle               time.Duration
	AutoSubmit            bool
	RefreshAfterSubmitted int
}

// DefaultsSpec 表单默认值规格，运行期间只读
type DefaultsSpec struct {
	Salary string
}

// 发布时间标签→站点内部取值表
var timePostedValues = map[string]string{
	"past 24 hours": "r86400",
	"past week":     "r604800",
	"past month":    "r2592000",
	"any time":      "",
}

// timePostedValue 查询发布时间标签对应的内部取值
func timePostedValue(label string) (string, bool) {
	value, ok := timePostedValues[strings.ToLower(strings.TrimSpace(label))]
	return value, ok
}

// 地点的已知变体拼写（变音符号差异），联想匹配时一并接受
var locationAlternates = map[string][]string{
	"türkiye": {"Turkey"},
	"turkiye": {"Turkey"},
	"turkey":  {"Türkiye"},
}

// locationCandidates 期望地点及其可接受的变体写法，按优先级排列
func locationCandidates(location string) []string {
	candidates := []string{location}
	if alternates, ok := locationAlternates[strings.ToLower(location)]; ok {
		candidates = append(candidates, alternates...)
	}
	return candidates
}

// SpecsFromConfig 把全局配置转换为worker规格
func SpecsFromConfig(cfg *config.GlobalConfig) (*FilterSpec, *BehaviorSpec, *DefaultsSpec) {
	filters := &FilterSpec{
		Location:           cfg.Filters.Location,
		TimePosted:         cfg.Filters.TimePosted,
		ClearDistance:      cfg.Filters.ClearDistance,
		EasyApplyOnly:      cfg.Filters.EasyApply,
		UseAllFiltersPanel: cfg.Filters.UseAllFiltersPanel,
		SettleMin:          time.Duration(cfg.Filters.SettleMinMillis) * time.Millisecond,
	}
	behavior := &BehaviorSpec{
		PauseOnUnfilled:       cfg.Behavior.PauseOnUnfilled,
		MaxIdle:               time.Duration(cfg.Behavior.MaxIdleSeconds) * time.Second,
		AutoSubmit:            cfg.Behavior.AutoSubmit,
		RefreshAfterSubmitted: cfg.Behavior.RefreshAfterSubmitted,
	}
	defaults := &DefaultsSpec{Salary: cfg.Defaults.Salary}
	return filters, behavior, defaults
}
