package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"line-crm/internal/analytics"
	"line-crm/internal/config"
	"line-crm/internal/gdrive"
	"line-crm/internal/line"
	"line-crm/internal/notify"
	"line-crm/internal/scheduler"
	"line-crm/internal/server"
	"line-crm/internal/storage"
	"line-crm/internal/webhook"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.ChannelAccessToken == "" {
		log.Printf("⚠️ LINE_CHANNEL_ACCESS_TOKEN is not set, outbound messages will fail")
	}
	if cfg.ChannelSecret == "" {
		log.Printf("⚠️ LINE_CHANNEL_SECRET is not set, signature verification is DISABLED")
	}

	recorder, err := storage.NewCSVRecorder(cfg.CSVFilePath)
	if err != nil {
		log.Fatalf("failed to init csv recorder: %v", err)
	}

	client := line.New(cfg.ChannelAccessToken)
	pool := webhook.NewPool(cfg.WorkerCount, cfg.QueueSize)
	processor := webhook.NewProcessor(client, recorder, cfg.WelcomeMessage, cfg.AutoReplyEnabled)
	dispatcher := webhook.NewDispatcher(cfg.ChannelSecret, pool, processor)

	var notifier *notify.Telegram
	if cfg.TelegramBotToken != "" && cfg.AdminChatID != 0 {
		notifier, err = notify.NewTelegram(cfg.TelegramBotToken, cfg.AdminChatID)
		if err != nil {
			log.Printf("failed to init telegram notifier: %v", err)
		}
	}

	var uploader *gdrive.Uploader
	if cfg.GoogleCredentialsPath != "" {
		uploader, err = gdrive.New(context.Background(), cfg.GoogleCredentialsPath, cfg.DriveFolderID)
		if err != nil {
			log.Printf("failed to init drive uploader: %v", err)
		}
	}

	sched := scheduler.New(cfg.ReportCronSpec)
	sched.SetReportFunc(func(ctx context.Context) error {
		return runDailyReport(ctx, recorder, notifier, uploader, cfg.CSVFilePath)
	})
	if notifier != nil || uploader != nil {
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		}
	}

	srv := server.New(cfg.Port, dispatcher, recorder, client, cfg.CSVFilePath)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	// drain queued events so accepted webhooks are not lost on restart
	if err := pool.Shutdown(ctx); err != nil {
		log.Printf("worker pool drain: %v", err)
	}
	sched.Stop()
	log.Println("✅ shutdown complete")
}

func runDailyReport(ctx context.Context, recorder storage.Recorder, notifier *notify.Telegram, uploader *gdrive.Uploader, csvPath string) error {
	records, err := recorder.LoadAll()
	if err != nil {
		return err
	}
	summary := analytics.Summarize(records, time.Now())
	report := analytics.RenderReport(summary)

	if notifier != nil {
		if err := notifier.Send(report); err != nil {
			log.Printf("❌ report notification failed: %v", err)
		}
	}
	if uploader != nil {
		link, err := uploader.UploadCSV(ctx, csvPath)
		if err != nil {
			log.Printf("❌ drive upload failed: %v", err)
		} else {
			log.Printf("📤 uploaded record log, share link: %s", link)
		}
	}
	return nil
}
