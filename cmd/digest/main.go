package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/LJTian/YouTubeDigest/internal/api"
	"github.com/LJTian/YouTubeDigest/internal/collector"
	"github.com/LJTian/YouTubeDigest/internal/config"
	"github.com/LJTian/YouTubeDigest/internal/digest"
	"github.com/LJTian/YouTubeDigest/internal/logger"
	"github.com/LJTian/YouTubeDigest/internal/scheduler"
	"github.com/LJTian/YouTubeDigest/internal/storage"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute 运行命令并返回进程退出码；任何失败都只输出一行日志
func execute(args []string, out io.Writer) int {
	log := logger.NewWithWriter(out, "digest")

	cmd := newRootCmd(log)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		log.Error("digest failed", slog.Any("err", err))
		return 1
	}
	return 0
}

func newRootCmd(log *slog.Logger) *cobra.Command {
	var sourcesPath, outputPath, markdownPath string

	loadConfig := func(cmd *cobra.Command) (*config.Config, error) {
		overrides := &config.Overrides{}
		if cmd.Flags().Changed("sources") {
			overrides.SourcesPath = &sourcesPath
		}
		if cmd.Flags().Changed("output") {
			overrides.OutputPath = &outputPath
		}
		if cmd.Flags().Changed("markdown") {
			overrides.MarkdownPath = &markdownPath
		}
		return config.Load(overrides)
	}

	root := &cobra.Command{
		Use:           "digest",
		Short:         "Fetch recent YouTube videos and render the weekly digest page",
		Long:          `Resolves the configured channels, searches this week's popular videos per topic and writes a self-contained HTML digest.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runOnce(cfg, log)
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the digest over HTTP and regenerate it on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serveDigest(cmd.Context(), cfg, log)
		},
	}

	root.PersistentFlags().StringVar(&sourcesPath, "sources", "", "YAML file with channel categories and topics (default: embedded)")
	root.PersistentFlags().StringVar(&outputPath, "output", config.DefaultOutput, "HTML output file")
	root.PersistentFlags().StringVar(&markdownPath, "markdown", "", "also write a Markdown copy of the digest to this file")
	root.AddCommand(serve)

	return root
}

func newRunner(cfg *config.Config, log *slog.Logger) *digest.Runner {
	client := collector.NewClient(collector.Options{
		BaseURL:           cfg.APIBase,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.HTTPTimeout,
		TopicWindow:       cfg.Sources.TopicWindow,
		RegionCode:        cfg.Sources.RegionCode,
		RelevanceLanguage: cfg.Sources.RelevanceLanguage,
	}, log)
	return digest.NewRunner(client, cfg.Sources, cfg.Location(), log)
}

func runOnce(cfg *config.Config, log *slog.Logger) error {
	store := storage.NewFileStore(cfg.OutputPath, cfg.MarkdownPath)
	if _, _, err := newRunner(cfg, log).RunAndWrite(store); err != nil {
		return err
	}
	log.Info("digest generated", slog.String("output", cfg.OutputPath))
	return nil
}

func serveDigest(parent context.Context, cfg *config.Config, log *slog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runner := newRunner(cfg, log)
	store := storage.NewFileStore(cfg.OutputPath, cfg.MarkdownPath)
	srv := api.NewServer(cfg.BasicAuthUser, cfg.BasicAuthPass, log)

	sched, err := scheduler.New(cfg.CronSpec, cfg.Location(), func() {
		d, page, err := runner.RunAndWrite(store)
		if err != nil {
			log.Error("scheduled digest failed", slog.Any("err", err))
		}
		if page != nil {
			srv.Update(d, page)
		}
	}, log)
	if err != nil {
		return err
	}

	r := gin.Default()
	srv.RegisterRoutes(r)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sched.Start()
	defer func() {
		log.Info("waiting for running digest to finish")
		<-sched.Stop().Done()
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting digest server", slog.String("addr", httpSrv.Addr), slog.String("cron", cfg.CronSpec))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
