package listener

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pricelist/internal/config"
	"pricelist/internal/logger"
)

func setup(t *testing.T) (config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	priceFile := filepath.Join(dir, "price1.csv")
	if err := os.WriteFile(priceFile, []byte("название,цена,фасовка\nСахар,50,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		PriceDir:         dir,
		FileMarker:       "price",
		OutputHTML:       filepath.Join(dir, "out", "output.html"),
		WatchIntervalSec: 1,
	}
	return cfg, priceFile
}

func TestRunCycleExportsOnlyOnChange(t *testing.T) {
	cfg, priceFile := setup(t)
	svc := NewService(cfg, logger.Discard())

	changed, err := svc.runCycle()
	if err != nil || !changed {
		t.Fatalf("first cycle changed=%v err=%v", changed, err)
	}
	if _, err := os.Stat(cfg.OutputHTML); err != nil {
		t.Fatal(err)
	}

	changed, err = svc.runCycle()
	if err != nil || changed {
		t.Fatalf("idle cycle changed=%v err=%v", changed, err)
	}

	if err := os.WriteFile(priceFile, []byte("название,цена,фасовка\nСахар,50,2\nСоль,12,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(priceFile, future, future); err != nil {
		t.Fatal(err)
	}

	changed, err = svc.runCycle()
	if err != nil || !changed {
		t.Fatalf("changed cycle changed=%v err=%v", changed, err)
	}
	blob, err := os.ReadFile(cfg.OutputHTML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(blob), "Соль") {
		t.Fatal("export not refreshed")
	}
}

func TestRunCycleIgnoresUnmarkedFiles(t *testing.T) {
	cfg, _ := setup(t)
	svc := NewService(cfg, logger.Discard())
	if _, err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.PriceDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if changed, _ := svc.runCycle(); changed {
		t.Fatal("unmarked file triggered export")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- NewService(cfg, logger.Discard()).Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
