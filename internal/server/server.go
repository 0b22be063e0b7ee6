// Package server exposes the HTTP surface: the webhook receiver plus the
// operator-facing stats, download and broadcast endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"line-crm/internal/analytics"
	"line-crm/internal/storage"
	"line-crm/internal/webhook"
)

type Server struct {
	dispatcher *webhook.Dispatcher
	recorder   storage.Recorder
	api        webhook.MessagingAPI
	csvPath    string
	srv        *http.Server
}

func New(port string, dispatcher *webhook.Dispatcher, recorder storage.Recorder, api webhook.MessagingAPI, csvPath string) *Server {
	s := &Server{
		dispatcher: dispatcher,
		recorder:   recorder,
		api:        api,
		csvPath:    csvPath,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.POST("/webhook", s.handleWebhook)
	r.GET("/stats", s.handleStats)
	r.GET("/download", s.handleDownload)
	r.POST("/broadcast", s.handleBroadcast)

	s.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// requestLogger logs method, path, status and latency.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) Start() error {
	log.Printf("🌐 listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "LINE Webhook Server is running!")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// handleWebhook reads the raw body once so the signature covers exactly the
// bytes LINE signed, then acknowledges immediately after scheduling.
func (s *Server) handleWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = s.dispatcher.Dispatch(body, c.GetHeader("X-Line-Signature"))
	if errors.Is(err, webhook.ErrSignature) {
		c.Status(http.StatusBadRequest)
		return
	}
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleStats(c *gin.Context) {
	records, err := s.recorder.LoadAll()
	if err != nil {
		log.Printf("stats: load records: %v", err)
	}
	if len(records) == 0 {
		c.String(http.StatusNotFound, "データがまだありません")
		return
	}

	summary := analytics.Summarize(records, time.Now())
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := statsTemplate.Execute(c.Writer, statsPage{
		TotalMessages: summary.TotalMessages,
		NeedsReply:    len(summary.NeedsReply),
		HighPriority:  len(summary.HighPriority),
		UniqueUsers:   summary.UniqueUsers,
	}); err != nil {
		log.Printf("stats: render: %v", err)
	}
}

func (s *Server) handleDownload(c *gin.Context) {
	records, err := s.recorder.LoadAll()
	if err != nil || len(records) == 0 {
		c.String(http.StatusNotFound, "データがまだありません。LINEでメッセージを送信してください。")
		return
	}
	name := fmt.Sprintf("LINE顧客管理_%s.csv", time.Now().Format("20060102_150405"))
	c.FileAttachment(s.csvPath, name)
}

type broadcastRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
	Text    string   `json:"text" binding:"required"`
}

// handleBroadcast pushes one text message to every listed user. Delivery is
// best effort per recipient; the response reports how many sends failed.
func (s *Server) handleBroadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, failed := 0, 0
	for _, userID := range req.UserIDs {
		if err := s.api.PushText(c.Request.Context(), userID, req.Text); err != nil {
			log.Printf("broadcast to %s failed: %v", userID, err)
			failed++
			continue
		}
		sent++
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}

type statsPage struct {
	TotalMessages int
	NeedsReply    int
	HighPriority  int
	UniqueUsers   int
}

var statsTemplate = template.Must(template.New("stats").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>LINE顧客管理システム - 統計</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        h1 { color: #00B900; }
        .stat { background: #f0f0f0; padding: 20px; margin: 10px 0; border-radius: 5px; }
        .stat h2 { margin: 0 0 10px 0; color: #333; }
        .stat p { margin: 5px 0; font-size: 24px; font-weight: bold; color: #00B900; }
        .download-btn {
            display: inline-block;
            background: #00B900;
            color: white;
            padding: 15px 30px;
            text-decoration: none;
            border-radius: 5px;
            margin-top: 20px;
        }
        .download-btn:hover { background: #009900; }
    </style>
</head>
<body>
    <h1>📊 LINE顧客管理システム</h1>
    <div class="stat">
        <h2>総メッセージ数</h2>
        <p>{{.TotalMessages}}件</p>
    </div>
    <div class="stat">
        <h2>返信が必要なメッセージ</h2>
        <p>{{.NeedsReply}}件</p>
    </div>
    <div class="stat">
        <h2>高優先度マネタイズ機会</h2>
        <p>{{.HighPriority}}件</p>
    </div>
    <div class="stat">
        <h2>総顧客数</h2>
        <p>{{.UniqueUsers}}名</p>
    </div>
    <a href="/download" class="download-btn">💾 CSVファイルをダウンロード</a>
</body>
</html>
`))
