package config

import (
	"fmt"
	"path/filepath"

	"easy_apply_go/utils"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// 全局配置结构体
type GlobalConfig struct {
	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Filters  FiltersConfig  `mapstructure:"filters" yaml:"filters"`
	Behavior BehaviorConfig `mapstructure:"behavior" yaml:"behavior"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	State    StateConfig    `mapstructure:"state" yaml:"state"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// 浏览器接入配置
type BrowserConfig struct {
	CDPUrl string `mapstructure:"cdp_url" yaml:"cdp_url"` // 远程调试端点
}

// 搜索筛选配置
type FiltersConfig struct {
	Location           string `mapstructure:"location" yaml:"location"`                           // 工作地点
	TimePosted         string `mapstructure:"time_posted" yaml:"time_posted"`                     // 发布时间（Past 24 hours等）
	Distance           string `mapstructure:"distance" yaml:"distance"`                           // 距离，留空且显式配置时清除距离筛选
	EasyApply          bool   `mapstructure:"easy_apply" yaml:"easy_apply"`                       // 仅Easy Apply职位
	UseAllFiltersPanel bool   `mapstructure:"use_all_filters_panel" yaml:"use_all_filters_panel"` // 走全部筛选面板而非顶栏
	SettleMinMillis    int    `mapstructure:"settle_min_ms" yaml:"settle_min_ms"`                 // 每个筛选生效后的最小等待

	// distance键在配置中显式出现且为空值时为true，由InitConfig填充
	ClearDistance bool `mapstructure:"-" yaml:"clear_distance"`
}

// 投递行为配置
type BehaviorConfig struct {
	PauseOnUnfilled       bool `mapstructure:"pause_on_unfilled" yaml:"pause_on_unfilled"`               // 未识别步骤/校验失败时暂停等待人工
	MaxIdleSeconds        int  `mapstructure:"max_idle_seconds" yaml:"max_idle_seconds"`                 // 无进展时的空转上限（秒）
	AutoSubmit            bool `mapstructure:"auto_submit" yaml:"auto_submit"`                           // 自动点击Submit
	RefreshAfterSubmitted int  `mapstructure:"refresh_after_submitted" yaml:"refresh_after_submitted"`   // 每提交N份后刷新页面，0为不刷新
}

// 表单默认值配置
type DefaultsConfig struct {
	Salary string `mapstructure:"salary" yaml:"salary"` // 薪资类输入框的自动填充值
}

// 状态持久化配置
type StateConfig struct {
	File string `mapstructure:"file" yaml:"file"` // 台账文件路径
}

// 数据库镜像配置
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

// InitConfig 初始化配置
func InitConfig() (*GlobalConfig, error) {
	viper.SetConfigName("config")   // 配置文件名称（不带扩展名）
	viper.SetConfigType("yaml")     // 配置文件类型
	viper.AddConfigPath("./config") // 配置文件路径
	if root, err := utils.GetProjectRoot(); err == nil {
		viper.AddConfigPath(filepath.Join(root, "config"))
	}

	viper.SetDefault("browser.cdp_url", "http://localhost:9222")
	viper.SetDefault("behavior.pause_on_unfilled", true)
	viper.SetDefault("behavior.max_idle_seconds", 900)
	viper.SetDefault("filters.settle_min_ms", 800)
	viper.SetDefault("state.file", "state/applied.json")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	var config GlobalConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	// distance键显式存在但为空值，表示要求清除距离筛选
	config.Filters.ClearDistance = keyDeclared(viper.GetViper(), "filters.distance") && config.Filters.Distance == ""

	return &config, nil
}

// keyDeclared 配置中是否显式写出了指定键。
// "distance:"不带值的写法解析为null，viper.InConfig查不到这种键，
// 这里改查键清单，null值的键同样在列。
func keyDeclared(v *viper.Viper, key string) bool {
	for _, k := range v.AllKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Dump 渲染生效配置，便于启动时核对
func Dump(config *GlobalConfig) string {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Sprintf("配置渲染失败: %v", err)
	}
	return string(data)
}
