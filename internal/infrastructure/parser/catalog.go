package parser

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// catalogColumns maps the export's header names to field positions. The shop
// panel exports with English WooCommerce headers.
type catalogColumns struct {
	id       int
	name     int
	regular  int
	sale     int
	category int
	images   int
}

func resolveCatalogColumns(header []string) (catalogColumns, error) {
	cols := catalogColumns{id: -1, name: -1, regular: -1, sale: -1, category: -1, images: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			cols.id = i
		case "name", "post_title":
			cols.name = i
		case "regular price", "regular_price":
			cols.regular = i
		case "sale price", "sale_price":
			cols.sale = i
		case "categories", "category":
			cols.category = i
		case "images", "image":
			cols.images = i
		}
	}
	if cols.name < 0 {
		return cols, fmt.Errorf("catalog header has no name column: %v", header)
	}
	return cols, nil
}

// LoadCatalog reads the product CSV export. A missing or unreadable file is
// fatal to the caller; a malformed individual row is skipped with a log line.
func LoadCatalog(path string) ([]entity.Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read catalog header: %w", err)
		}
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	cols, err := resolveCatalogColumns(ParseLine(scanner.Text()))
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := ParseLine(line)
		product, ok := productFromRow(fields, cols)
		if !ok {
			log.Printf("catalog: skipping malformed row %d in %s", lineNo, path)
			continue
		}
		products = append(products, product)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return products, nil
}

func productFromRow(fields []string, cols catalogColumns) (entity.Product, bool) {
	name := fieldAt(fields, cols.name)
	if name == "" {
		return entity.Product{}, false
	}
	return entity.Product{
		ID:         fieldAt(fields, cols.id),
		Name:       name,
		Brand:      entity.DetectBrand(name),
		Price:      resolvePrice(fieldAt(fields, cols.sale), fieldAt(fields, cols.regular)),
		Categories: fieldAt(fields, cols.category),
		ImageURL:   firstImage(fieldAt(fields, cols.images)),
	}, true
}

// resolvePrice prefers the discounted price, falls back to the regular price,
// and finally to the contact-us sentinel. It never returns an empty string.
func resolvePrice(sale, regular string) string {
	if sale != "" {
		return sale
	}
	if regular != "" {
		return regular
	}
	return constants.ContactUsPrice
}

// firstImage takes the first entry of a comma-joined image list. The list
// arrives as one already-parsed field because the export quotes it.
func firstImage(images string) string {
	if images == "" {
		return ""
	}
	if idx := strings.Index(images, ","); idx >= 0 {
		images = images[:idx]
	}
	return strings.TrimSpace(images)
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// LoadSlugs reads the slug export mapping product titles to canonical URLs.
func LoadSlugs(path string) ([]entity.SlugRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open slugs %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []entity.SlugRecord
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := ParseLine(line)
		if first {
			first = false
			// Header row if the URL column does not look like a URL.
			if len(fields) < 2 || !strings.HasPrefix(fields[1], "http") {
				continue
			}
		}
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			continue
		}
		records = append(records, entity.SlugRecord{Title: fields[0], URL: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read slugs %s: %w", path, err)
	}
	return records, nil
}
