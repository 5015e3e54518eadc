package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/db"
	"github.com/newshub/baitscan/internal/errors"
)

// ExportSchemaVersion is written in the header line of every export.
const ExportSchemaVersion = "1.0"

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Category       *string // optional filter by category
	IncludeDeleted bool
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Count      int   `json:"count" yaml:"count"`
	ExportedAt int64 `json:"exported_at" yaml:"exported_at"`
}

// ExportHeader represents the header line of a JSONL export.
type ExportHeader struct {
	BaitscanExport bool   `json:"_baitscan_export"`
	SchemaVersion  string `json:"schema_version"`
	ExportedAt     int64  `json:"exported_at"`
}

// Export streams stored analyses to w as JSONL: one header line, then one record per line
// in creation order.
func Export(ctx context.Context, database *sql.DB, w io.Writer, input ExportInput) (*ExportOutput, error) {
	category, err := ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, errors.NewCancelled("export")
	}

	exportedAt := time.Now().Unix()
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := ExportHeader{
		BaitscanExport: true,
		SchemaVersion:  ExportSchemaVersion,
		ExportedAt:     exportedAt,
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.NewInternal(err)
	}

	filter := db.Filter{
		Category:       category,
		IncludeDeleted: input.IncludeDeleted,
	}

	count := 0
	err = db.Each(ctx, database, filter, func(r *clickbait.Record) error {
		if ctx.Err() != nil {
			return errors.NewCancelled("export")
		}
		if err := enc.Encode(r); err != nil {
			return errors.NewInternal(err)
		}
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ExportOutput{
		Count:      count,
		ExportedAt: exportedAt,
	}, nil
}
