package slog

import (
	"log/slog"
	"time"

	"github.com/awalczak/cardscan"
)

// Ensure LoggingDetector implements cardscan.StructureDetector.
var _ cardscan.StructureDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a StructureDetector with detection logging.
type LoggingDetector struct {
	next   cardscan.StructureDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next cardscan.StructureDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// DetectStructure delegates to the wrapped detector and logs what was
// found.
func (d *LoggingDetector) DetectStructure(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
	begin := time.Now()
	structure, err := d.next.DetectStructure(html, baseURL, maxArticles)
	if err != nil {
		d.logger.Error("structure detection failed",
			"url", baseURL,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	d.logger.Info("structure detection",
		"url", baseURL,
		"groups", len(structure.TopicGroups),
		"cards", structure.CardCount(),
		"duration", time.Since(begin),
	)
	return structure, nil
}
