package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"blackpiston/internal/blob"
	"blackpiston/internal/export"
	"blackpiston/internal/metrics"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

// ExportFile is a rendered export ready to be sent or stored.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
	Rows        int
	// Location is set once the file has been stored in a sink.
	Location string
}

// ExportService renders filtered tables to CSV, XLSX or PDF.
type ExportService struct {
	Sink      blob.Sink
	Metrics   *metrics.Recorder
	RequestID string
	Now       func() time.Time
}

// Render writes records, in the given order, with the given column layout.
func Render[T table.Record](s ExportService, resource, title string, format export.Format, cols export.Columns, records []T) (ExportFile, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, title, cols, records); err != nil {
		return ExportFile{}, fmt.Errorf("export %s: %w", resource, err)
	}
	s.Metrics.Export(resource, string(format))
	utils.LogEvent(s.RequestID, "export", resource, fmt.Sprintf("format=%s rows=%d bytes=%d", format, len(records), buf.Len()))
	return ExportFile{
		Name:        export.Filename(resource, format),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
		Rows:        len(records),
	}, nil
}

// Store uploads f to the configured sink under a dated key.
func (s ExportService) Store(ctx context.Context, f ExportFile) (ExportFile, error) {
	if s.Sink == nil {
		return f, fmt.Errorf("export %s: no sink configured", f.Name)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	key := utils.DateOnly(utils.Timestamp(now())) + "/" + f.Name
	loc, err := s.Sink.Put(ctx, key, bytes.NewReader(f.Body), f.ContentType)
	if err != nil {
		return f, fmt.Errorf("store export %s: %w", f.Name, err)
	}
	f.Location = loc
	utils.LogEvent(s.RequestID, "export", "store", "location="+loc)
	return f, nil
}
