package listener

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pricelist/internal/config"
	"pricelist/internal/logger"
	"pricelist/internal/pipeline"
)

// Service polls the price folder and rewrites the HTML export whenever the
// set of price files or their contents change.
type Service struct {
	cfg  config.Config
	log  *logger.Logger
	last string
}

func NewService(cfg config.Config, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	for {
		if _, err := s.runCycle(); err != nil {
			s.log.Error("watch cycle failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// runCycle reports whether the export was rewritten.
func (s *Service) runCycle() (bool, error) {
	fp, err := fingerprint(s.cfg.PriceDir, s.cfg.FileMarker)
	if err != nil {
		return false, err
	}
	if fp == s.last {
		return false, nil
	}

	cat, stats, err := pipeline.LoadCatalog(s.cfg, s.log)
	if err != nil {
		return false, err
	}
	if err := pipeline.ExportHTML(cat.Items(), s.cfg.OutputHTML); err != nil {
		return false, err
	}
	s.last = fp

	s.log.Info("export refreshed", "output", s.cfg.OutputHTML, "items", stats.Accepted, "files", stats.FilesRead)
	return true, nil
}

func fingerprint(dir, marker string) (string, error) {
	files, err := pipeline.ScanPriceFiles(dir, marker)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, name := range files {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(h, "%s|missing\n", name)
			continue
		}
		fmt.Fprintf(h, "%s|%d|%d\n", name, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
