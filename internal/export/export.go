// Package export renders study analytics as downloadable documents:
// a JSON snapshot and an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/domain/category"
)

// CategoryEntry is one category's lifetime performance in an export.
type CategoryEntry struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Accuracy float64 `json:"accuracy"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
}

// Document is the full JSON export payload.
type Document struct {
	Version    string                   `json:"version"`
	ExportedAt string                   `json:"exported_at"`
	Daily      []analytics.DailyBucket  `json:"daily"`
	Weekly     []analytics.WeeklyBucket `json:"weekly"`
	Categories []CategoryEntry          `json:"categories"`
}

// Build assembles the export document from current analytics.
func Build(ctx context.Context, agg *analytics.Aggregator, days, weeks int) Document {
	perf := agg.CategoryPerformance(ctx)

	categories := make([]CategoryEntry, 0, len(perf))
	for _, cat := range category.All() {
		p, ok := perf[cat]
		if !ok {
			continue
		}
		categories = append(categories, CategoryEntry{
			Category: string(cat),
			Name:     cat.DisplayName(),
			Accuracy: p.Accuracy,
			Attempts: p.Attempts,
			Correct:  p.Correct,
		})
	}

	return Document{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Daily:      agg.DailyStats(ctx, days),
		Weekly:     agg.WeeklyStats(ctx, weeks),
		Categories: categories,
	}
}

// Workbook renders the document as an XLSX file with one sheet per
// aggregate (Daily, Weekly, Categories).
func Workbook(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Daily"); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeDaily(f, doc.Daily); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Weekly"); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}
	if err := writeWeekly(f, doc.Weekly); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Categories"); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}
	if err := writeCategories(f, doc.Categories); err != nil {
		return nil, err
	}

	return f, nil
}

func writeDaily(f *excelize.File, daily []analytics.DailyBucket) error {
	headers := []string{"Date", "Questions", "Correct", "Accuracy", "Time Spent (s)"}
	if err := writeRow(f, "Daily", 1, headers); err != nil {
		return err
	}
	for i, b := range daily {
		row := []any{
			b.Date.Format("2006-01-02"),
			b.QuestionsAnswered,
			b.CorrectAnswers,
			b.Accuracy,
			int(b.TotalTimeSpent.Seconds()),
		}
		if err := writeRow(f, "Daily", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeWeekly(f *excelize.File, weekly []analytics.WeeklyBucket) error {
	headers := []string{"Week Start", "Questions", "Accuracy", "Time Spent (s)", "Days Studied"}
	if err := writeRow(f, "Weekly", 1, headers); err != nil {
		return err
	}
	for i, b := range weekly {
		row := []any{
			b.WeekStart.Format("2006-01-02"),
			b.QuestionsAnswered,
			b.Accuracy,
			int(b.TimeSpent.Seconds()),
			b.DaysStudied,
		}
		if err := writeRow(f, "Weekly", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCategories(f *excelize.File, categories []CategoryEntry) error {
	headers := []string{"Category", "Accuracy", "Attempts", "Correct"}
	if err := writeRow(f, "Categories", 1, headers); err != nil {
		return err
	}
	for i, c := range categories {
		row := []any{c.Name, c.Accuracy, c.Attempts, c.Correct}
		if err := writeRow(f, "Categories", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow[T any](f *excelize.File, sheet string, rowNum int, values []T) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
