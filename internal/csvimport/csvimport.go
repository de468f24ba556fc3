// Package csvimport parses product CSV files and drives batch imports
// through the product store. Individual row failures never abort the
// batch; they are tallied and reported in an aggregate result.
package csvimport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nvelasco/trendboard/internal/model"
)

// requiredColumns are the header names a product CSV must carry,
// matched case-insensitively.
var requiredColumns = []string{"name", "description", "category", "price", "imageurl"}

// Row is one parsed CSV record. Price stays a raw string so that a
// malformed value fails its own row during Import instead of the parse.
type Row struct {
	Line        int
	Name        string
	Description string
	Category    string
	Price       string
	ImageURL    string
}

// Result is the aggregate outcome of a batch import.
type Result struct {
	Successful int
	Failed     int
	Errors     []string
}

// ProductAdder is the slice of the product store the importer needs.
type ProductAdder interface {
	AddProduct(ctx context.Context, input model.ProductInput) (model.Product, error)
}

// Parse reads a product CSV. The first record must be a header row
// containing every required column; extra columns are ignored. Rows
// with too few fields for the required columns are dropped.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"missing required columns: %s", strings.Join(missing, ", "),
		)
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := Row{
			Line:        line,
			Name:        field("name"),
			Description: field("description"),
			Category:    field("category"),
			Price:       field("price"),
			ImageURL:    field("imageurl"),
		}
		if row.Name == "" && row.Description == "" && row.Price == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Import creates one product per row through the adder. The loop
// continues past individual failures and accumulates a per-row tally
// plus an error message list.
func Import(ctx context.Context, adder ProductAdder, rows []Row) Result {
	var result Result

	for _, row := range rows {
		if err := importRow(ctx, adder, row); err != nil {
			result.Failed++
			name := row.Name
			if name == "" {
				name = fmt.Sprintf("row %d", row.Line)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		result.Successful++
	}

	return result
}

// importRow validates and creates a single product.
func importRow(ctx context.Context, adder ProductAdder, row Row) error {
	price, err := strconv.ParseFloat(row.Price, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", row.Price)
	}
	if price < 0 {
		return fmt.Errorf("price must not be negative, got %s", row.Price)
	}

	input := model.ProductInput{
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Price:       price,
		ImageURL:    row.ImageURL,
	}
	if input.ImageURL == "" {
		input.ImageURL = model.PlaceholderImage
	}
	if err := input.Validate(); err != nil {
		return err
	}

	if _, err := adder.AddProduct(ctx, input); err != nil {
		return err
	}
	return nil
}

// Template returns the downloadable CSV template content.
func Template() string {
	return "name,description,category,price,imageUrl\n" +
		"Sample Product,This is a sample product description,Electronics,29.99,https://via.placeholder.com/300x200\n" +
		"Another Product,Another sample description,Clothing & Apparel,19.99,https://via.placeholder.com/300x200\n"
}
