package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"easy_apply_go/config"
	"easy_apply_go/model"
	"easy_apply_go/repository"
	"easy_apply_go/service"
	"easy_apply_go/utils"
	"easy_apply_go/worker/linkedin"
	"easy_apply_go/worker/playwright_manager"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Application struct {
	config            *config.GlobalConfig
	db                *gorm.DB
	ledgerService     *service.LedgerService
	playwrightManager *playwright_manager.PlaywrightManager
	jobService        *linkedin.LinkedInJobService
}

// NewApplication 创建新的应用程序实例
func NewApplication() *Application {
	return &Application{}
}

// InitDatabase 初始化数据库连接（可选的MySQL镜像）
func (app *Application) InitDatabase() error {
	if !app.config.Database.Enabled {
		log.Info("数据库镜像未启用，处理记录仅写入台账文件")
		return nil
	}
	log.Info("初始化数据库连接...")

	db, err := gorm.Open(mysql.Open(app.config.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("数据库连接失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取数据库连接失败: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&model.JobRecordEntity{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %v", err)
	}

	app.db = db
	log.Info("✓ MySQL数据库连接成功")
	return nil
}

// InitServices 初始化所有服务
func (app *Application) InitServices() error {
	log.Info("========================================")
	log.Info("   初始化应用程序服务")
	log.Info("========================================")

	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("配置加载失败: %v", err)
	}
	app.config = cfg
	log.Debugf("生效配置:\n%s", config.Dump(cfg))

	// 数据库镜像是可选能力，连接失败降级为仅文件台账
	if err := app.InitDatabase(); err != nil {
		log.Warnf("数据库初始化失败，降级为仅文件台账: %v", err)
		app.db = nil
	}

	// 初始化台账服务
	var recordRepo repository.JobRecordRepository
	if app.db != nil {
		recordRepo = repository.NewJobRecordRepository(app.db)
		if records, err := recordRepo.FindAll(); err == nil {
			log.Infof("数据库镜像现有记录%d条", len(records))
		}
	}
	ledgerRepo := repository.NewLedgerRepository(cfg.State.File)
	app.ledgerService = service.NewLedgerService(ledgerRepo, recordRepo)

	prompter := utils.NewConsolePrompter()

	// 初始化Playwright管理器
	app.playwrightManager = playwright_manager.NewPlaywrightManager(cfg.Browser.CDPUrl, prompter)

	// 初始化LinkedIn任务服务
	filters, behavior, defaults := linkedin.SpecsFromConfig(cfg)
	app.jobService = linkedin.NewLinkedInJobService(
		app.playwrightManager,
		app.ledgerService,
		func() *linkedin.Worker {
			return linkedin.NewWorker(filters, behavior, defaults, app.ledgerService, prompter)
		},
	)

	if err := app.playwrightManager.Init(); err != nil {
		return fmt.Errorf("Playwright管理器初始化失败: %v", err)
	}

	log.Info("✓ 所有服务初始化完成")
	return nil
}

// Start 启动应用程序
func (app *Application) Start() error {
	log.Info("========================================")
	log.Info("   启动Easy Apply自动投递")
	log.Info("========================================")

	go func() {
		progressCallback := func(message linkedin.JobProgressMessage) {
			log.Infof("[%s][%s] %s", message.Platform, message.Type, message.Message)
			if message.Current != nil && message.Total != nil {
				log.Infof("进度: %d/%d", *message.Current, *message.Total)
			}
		}

		if err := app.jobService.ExecuteDelivery(progressCallback); err != nil {
			log.Errorf("投递任务执行失败: %v", err)
		}
	}()

	log.Info("✓ 应用程序已启动")
	return nil
}

// Stop 停止应用程序
func (app *Application) Stop() error {
	log.Info("========================================")
	log.Info("   停止应用程序")
	log.Info("========================================")

	if app.jobService != nil {
		log.Info("停止投递任务...")
		app.jobService.StopDelivery()
	}

	if app.playwrightManager != nil {
		app.playwrightManager.Close()
	}

	if app.db != nil {
		log.Info("关闭数据库连接...")
		if sqlDB, err := app.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	log.Info("✓ 应用程序已安全停止")
	return nil
}

// waitForShutdown 等待关闭信号
func (app *Application) waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigChan
	log.Infof("接收到信号: %v，开始优雅关闭...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("✓ 应用程序优雅关闭完成")
	case <-ctx.Done():
		log.Warn("⚠️ 关闭超时，强制退出")
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("🚀 启动Easy Apply自动投递...")

	app := NewApplication()

	if err := app.InitServices(); err != nil {
		log.Fatalf("❌ 服务初始化失败: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("❌ 应用程序启动失败: %v", err)
	}

	app.waitForShutdown()

	log.Info("👋 应用程序已退出")
}
