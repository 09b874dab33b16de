package main

import (
	"MCQ-Generator-Backend/internal/api"
	"MCQ-Generator-Backend/internal/config"
	"MCQ-Generator-Backend/internal/nlp"
	"MCQ-Generator-Backend/internal/router"
	"MCQ-Generator-Backend/internal/service"
	"MCQ-Generator-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mcq-server",
	Short:        "Generate fill-in-the-blank MCQs from text and export them as PDF",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.Flags().String("config", "", "配置文件路径 (默认在 ./config 与 . 中查找 config.yaml)")
	rootCmd.Flags().String("port", "", "监听地址，例如 :5000 (覆盖 server.port)")
	rootCmd.Flags().String("log-level", "", "日志级别 debug|info|warn|error (覆盖 log.level)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	v := config.New(configFile)
	if err := v.BindPFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
		return err
	}
	if err := v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}

	cfg, found, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	if !found {
		logger.Warn("未找到 config.yaml 文件，将使用默认值与环境变量进行配置。")
	}

	logger.Info("正在加载语言模型...")
	analyzer, err := nlp.Default()
	if err != nil {
		logger.WithError(err).Error("初始化语言模型失败")
		return err
	}

	rng, err := utils.NewRand(cfg.Generator.Seed)
	if err != nil {
		return fmt.Errorf("初始化随机源失败: %w", err)
	}

	mcqService := service.NewMCQService(analyzer, rng, service.MCQOptions{
		Placeholder: cfg.Generator.Placeholder,
		Blank:       cfg.Generator.Blank,
	}, logger)

	pdfService, err := service.NewPDFService(service.PDFOptions{
		Title:    cfg.PDF.Title,
		FontSize: cfg.PDF.FontSize,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("初始化 PDF 服务失败")
		return err
	}

	mcqHandler := api.NewMCQHandler(mcqService, pdfService, cfg.Generator.DefaultNumQuestions, logger)

	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(mcqHandler, cfg.CORS, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Port).Info("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("服务启动失败")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("收到退出信号，正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("服务关闭失败")
		return err
	}
	logger.Info("服务已关闭")
	return nil
}
