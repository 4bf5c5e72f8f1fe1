package pipeline

import (
	"time"

	"pricelist/internal"
	"pricelist/internal/catalog"
	"pricelist/internal/config"
	"pricelist/internal/logger"
)

type LoadStats struct {
	FilesRead   int
	FilesFailed int
	Rows        int
	Accepted    int
	Skipped     map[internal.SkipReason]int
	Elapsed     time.Duration
}

func (s LoadStats) Dropped() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

type ProcessingService struct {
	cfg config.Config
	log *logger.Logger
}

func NewProcessingService(cfg config.Config, log *logger.Logger) *ProcessingService {
	return &ProcessingService{cfg: cfg, log: log}
}

// LoadCatalog reads every price file once and returns the frozen catalog.
// Only an unreadable folder is an error.
func (s *ProcessingService) LoadCatalog() (*catalog.Catalog, LoadStats, error) {
	start := time.Now()
	stats := LoadStats{Skipped: map[internal.SkipReason]int{}}

	loader := NewLoader(s.cfg, s.log)
	records, err := loader.Records()
	if err != nil {
		return nil, stats, err
	}

	builder := catalog.NewBuilder()
	for rec := range records {
		stats.Rows++
		item, reason := Normalize(rec)
		if reason != internal.SkipNone {
			stats.Skipped[reason]++
			s.log.Debug("row dropped", "file", rec.File, "line", rec.Line, "reason", reason)
			continue
		}
		builder.Append(item)
	}

	stats.FilesRead, stats.FilesFailed = loader.FileCounts()
	stats.Accepted = builder.Len()
	stats.Elapsed = time.Since(start)

	s.log.Info("catalog loaded",
		"dir", s.cfg.PriceDir,
		"files", stats.FilesRead,
		"failedFiles", stats.FilesFailed,
		"rows", stats.Rows,
		"items", stats.Accepted,
		"dropped", stats.Dropped(),
		"ms", stats.Elapsed.Milliseconds(),
	)
	return builder.Build(), stats, nil
}

// LoadCatalog is a convenience wrapper over ProcessingService.
func LoadCatalog(cfg config.Config, log *logger.Logger) (*catalog.Catalog, LoadStats, error) {
	return NewProcessingService(cfg, log).LoadCatalog()
}
