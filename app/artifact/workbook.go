package artifact

import (
	"fmt"

	"github.com/hafizhr/kliping/app/catalog"
	"github.com/hafizhr/kliping/app/news"
	"github.com/xuri/excelize/v2"
)

const (
	newsSheet    = "News Headlines"
	catalogSheet = "Gramedia Books"
)

var (
	newsHeader    = []any{"Media", "Headline", "Image", "URL"}
	catalogHeader = []any{"Judul", "Penerbit", "Harga", "Image URL"}
)

// WriteNews persists a news batch as a timestamped workbook, one row per
// source in batch order, and returns the artifact path.
func (s *Store) WriteNews(records []news.Record) (string, error) {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, []any{record.Media, record.Headline, record.Image, record.URL})
	}

	path := s.timestampedPath("news_headlines", ".xlsx")
	if err := writeSheet(path, newsSheet, newsHeader, rows); err != nil {
		return "", fmt.Errorf("failed to write news artifact: %w", err)
	}
	return path, nil
}

// ReadNews reverses WriteNews field-for-field.
func (s *Store) ReadNews(path string) ([]news.Record, error) {
	rows, err := readSheet(path, newsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read news artifact: %w", err)
	}

	records := make([]news.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, news.Record{
			Media:    cell(row, 0),
			Headline: cell(row, 1),
			Image:    cell(row, 2),
			URL:      cell(row, 3),
		})
	}
	return records, nil
}

// WriteCatalog persists a catalog batch. An empty batch still writes the
// header-only sheet.
func (s *Store) WriteCatalog(records []catalog.Record) (string, error) {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, []any{record.Title, record.Publisher, record.Price, record.ImageURL})
	}

	path := s.timestampedPath("gramedia_books", ".xlsx")
	if err := writeSheet(path, catalogSheet, catalogHeader, rows); err != nil {
		return "", fmt.Errorf("failed to write catalog artifact: %w", err)
	}
	return path, nil
}

func (s *Store) ReadCatalog(path string) ([]catalog.Record, error) {
	rows, err := readSheet(path, catalogSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog artifact: %w", err)
	}

	records := make([]catalog.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, catalog.Record{
			Title:     cell(row, 0),
			Publisher: cell(row, 1),
			Price:     cell(row, 2),
			ImageURL:  cell(row, 3),
		})
	}
	return records, nil
}

func writeSheet(path, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		axis, err := excelize.JoinCellName("A", i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// readSheet returns the sheet's data rows with the header stripped.
func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet '%s' has no header row", sheet)
	}

	return rows[1:], nil
}

// cell guards against short rows: trailing empty cells are not always
// materialized by the workbook reader.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
