// Package gdrive uploads the record log to Google Drive so the spreadsheet
// workflow keeps working off-box copies.
package gdrive

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type Uploader struct {
	svc      *drive.Service
	folderID string
}

// New builds an uploader from a service-account credentials file.
func New(ctx context.Context, credentialsPath, folderID string) (*Uploader, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	svc, err := drive.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Uploader{svc: svc, folderID: folderID}, nil
}

// UploadCSV copies the CSV at path to Drive under a timestamped name and
// returns the shareable link of the created file.
func (u *Uploader) UploadCSV(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:     uploadName(time.Now()),
		MimeType: "text/csv",
	}
	if u.folderID != "" {
		meta.Parents = []string{u.folderID}
	}

	created, err := u.svc.Files.Create(meta).
		Media(f).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload csv: %w", err)
	}
	return created.WebViewLink, nil
}

func uploadName(now time.Time) string {
	return fmt.Sprintf("LINE顧客管理システム_%s.csv", now.Format("20060102_150405"))
}
