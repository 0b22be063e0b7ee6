package gdrive

import (
	"testing"
	"time"
)

func TestUploadName(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 5, 3, 0, time.Local)
	want := "LINE顧客管理システム_20250701_090503.csv"
	if got := uploadName(now); got != want {
		t.Fatalf("uploadName = %q, want %q", got, want)
	}
}
