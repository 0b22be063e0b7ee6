package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// LINE channel credentials. An empty secret disables signature
	// verification (insecure mode for constrained deployments).
	ChannelSecret      string `env:"LINE_CHANNEL_SECRET"`
	ChannelAccessToken string `env:"LINE_CHANNEL_ACCESS_TOKEN"`

	// Server
	Port string `env:"PORT" envDefault:"5000"`

	// Storage
	CSVFilePath string `env:"CSV_FILE_PATH" envDefault:"data/customer_data.csv"`

	// Event processing
	WorkerCount int `env:"WORKER_COUNT" envDefault:"4"`
	QueueSize   int `env:"QUEUE_SIZE" envDefault:"256"`

	// Outbound messages
	AutoReplyEnabled bool   `env:"AUTO_REPLY_ENABLED" envDefault:"true"`
	WelcomeMessage   string `env:"WELCOME_MESSAGE" envDefault:"友だち追加ありがとうございます！お気軽にメッセージをお送りください。"`

	// Scheduled reporting
	ReportCronSpec string `env:"REPORT_CRON_SPEC" envDefault:"0 21 * * *"`

	// Google Drive upload (optional)
	GoogleCredentialsPath string `env:"GOOGLE_CREDENTIALS_PATH"`
	DriveFolderID         string `env:"DRIVE_FOLDER_ID"`

	// Telegram admin notifications (optional)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	AdminChatID      int64  `env:"ADMIN_CHAT_ID"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
