package csvimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/model"
)

// collectAdder records the inputs it receives and can fail on demand.
type collectAdder struct {
	added   []model.ProductInput
	failFor string
}

func (a *collectAdder) AddProduct(ctx context.Context, input model.ProductInput) (model.Product, error) {
	if a.failFor != "" && input.Name == a.failFor {
		return model.Product{}, errors.New("server rejected product")
	}
	a.added = append(a.added, input)
	return model.Product{ID: "p-1", Name: input.Name}, nil
}

const goodCSV = "name,description,category,price,imageUrl\n" +
	"Widget,A widget,Electronics,9.99,https://example.com/w.png\n" +
	"Gadget,A gadget,Other,19.99,\n"

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(goodCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Equal(t, "9.99", rows[0].Price)
	assert.Equal(t, "", rows[1].ImageURL)
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	csv := "Name,DESCRIPTION,Category,price,ImageURL\n" +
		"Widget,A widget,Electronics,9.99,\n"
	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseMissingColumns(t *testing.T) {
	csv := "name,description\nWidget,A widget\n"
	_, err := Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "price")
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseSkipsBlankRows(t *testing.T) {
	csv := goodCSV + ",,,,\n"
	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestImportContinuesPastFailures(t *testing.T) {
	csv := "name,description,category,price,imageUrl\n" +
		"Good One,desc,Electronics,9.99,\n" +
		"Good Two,desc,Other,19.99,\n" +
		"Bad Price,desc,Other,not-a-number,\n" +
		"Good Three,desc,Other,29.99,\n"

	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	adder := &collectAdder{}
	result := Import(context.Background(), adder, rows)

	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Bad Price")
	assert.Contains(t, result.Errors[0], "invalid price")

	// The failing row did not stop the rows after it.
	assert.Len(t, adder.added, 3)
}

func TestImportAdderFailureIsPerRow(t *testing.T) {
	rows, err := Parse(strings.NewReader(goodCSV))
	require.NoError(t, err)

	adder := &collectAdder{failFor: "Widget"}
	result := Import(context.Background(), adder, rows)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Widget: server rejected product")
}

func TestImportFillsPlaceholderImage(t *testing.T) {
	rows, err := Parse(strings.NewReader(goodCSV))
	require.NoError(t, err)

	adder := &collectAdder{}
	Import(context.Background(), adder, rows)

	require.Len(t, adder.added, 2)
	assert.Equal(t, "https://example.com/w.png", adder.added[0].ImageURL)
	assert.Equal(t, model.PlaceholderImage, adder.added[1].ImageURL)
}

func TestImportNegativePrice(t *testing.T) {
	csv := "name,description,category,price,imageUrl\n" +
		"Refund,desc,Other,-5,\n"
	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	result := Import(context.Background(), &collectAdder{}, rows)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors[0], "negative")
}

func TestTemplateParses(t *testing.T) {
	rows, err := Parse(strings.NewReader(Template()))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
