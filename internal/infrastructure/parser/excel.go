package parser

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// LoadCatalogXLSX reads a catalog exported as an Excel workbook. The shop
// panel offers both CSV and xlsx exports with the same columns; rows come
// from the first sheet.
func LoadCatalogXLSX(path string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("catalog workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read catalog sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog workbook %s is empty", path)
	}

	cols, err := resolveCatalogColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	for i, row := range rows[1:] {
		product, ok := productFromRow(row, cols)
		if !ok {
			log.Printf("catalog: skipping malformed row %d in %s", i+2, path)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}
