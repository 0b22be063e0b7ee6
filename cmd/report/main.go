// Command report prints the customer analysis report for the record log:
// reply backlog, monetization opportunities, per-customer summary and
// recommended actions.
package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"line-crm/internal/analytics"
	"line-crm/internal/config"
	"line-crm/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	cfg := config.New()

	recorder, err := storage.NewCSVRecorder(cfg.CSVFilePath)
	if err != nil {
		log.Fatalf("failed to open record log: %v", err)
	}
	records, err := recorder.LoadAll()
	if err != nil {
		log.Fatalf("failed to load records: %v", err)
	}

	banner := strings.Repeat("=", 60)
	fmt.Println(banner)
	fmt.Println("LINE顧客管理システム - 分析レポート")
	fmt.Println(banner)
	fmt.Println()
	fmt.Print(analytics.RenderReport(analytics.Summarize(records, time.Now())))
	fmt.Println()
	fmt.Println(banner)
	fmt.Println("分析完了")
	fmt.Println(banner)
}
