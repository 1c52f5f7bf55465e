package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/orderlink/orderlink-backend/internal/pricing"
	"github.com/orderlink/orderlink-backend/pkg/config"
	pkgerrors "github.com/orderlink/orderlink-backend/pkg/errors"
)

const (
	defaultName        = "Unnamed Product"
	defaultDescription = "No description available"
	defaultDelivery    = "Not specified"

	maxWorkbookBytes = 32 << 20
)

// Header variants per field, in precedence order. The first variant present
// with a non-empty cell wins.
var (
	nameHeaders        = []string{"Item Name", "item name", "name"}
	descriptionHeaders = []string{"Description", "description"}
	priceHeaders       = []string{"Price", "price"}
	discountHeaders    = []string{"Discount", "discount"}
	deliveryHeaders    = []string{"Estimated Delivery Time", "delivery time"}
	imageHeaders       = []string{"Product Image Path", "image"}
)

// Loader retrieves workbook bytes from the configured source and parses them
// into products. The same parsing routine serves both the configured source
// and manually uploaded bytes.
type Loader struct {
	path          string
	url           string
	fallbackImage string
	client        *http.Client
}

// NewLoader builds a loader for the configured catalog source.
func NewLoader(catalogCfg config.CatalogConfig, storeCfg config.StoreConfig) *Loader {
	return &Loader{
		path:          catalogCfg.Path,
		url:           catalogCfg.URL,
		fallbackImage: storeCfg.ImageFallback,
		client:        &http.Client{Timeout: catalogCfg.FetchTimeout},
	}
}

// Fetch retrieves workbook bytes from the configured URL or local path. A
// miss is not terminal for the storefront: callers translate the
// CatalogUnavailable code into the manual-upload prompt.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	var errs error

	if l.url != "" {
		data, err := l.fetchURL(ctx)
		if err == nil {
			return data, nil
		}
		errs = multierr.Append(errs, err)
	}

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err == nil {
			return data, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("read %s: %w", l.path, err))
	}

	if errs == nil {
		errs = fmt.Errorf("no catalog source configured")
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogUnavailable, errs, "retrieve catalog")
}

func (l *Loader) fetchURL(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", l.url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxWorkbookBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", l.url, err)
	}
	return data, nil
}

// Parse reads the first sheet of the workbook, one candidate product per
// row. Malformed numeric cells degrade to zero per field; only unreadable
// workbook bytes are a parse error.
func (l *Loader) Parse(data []byte) ([]Product, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogParse, err, "open workbook")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeCatalogParse, "workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogParse, err, "read first sheet")
	}
	if len(rows) < 2 {
		return []Product{}, nil
	}

	columns := headerColumns(rows[0])

	products := make([]Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}

		quote := pricing.Normalize(
			lookup(row, columns, priceHeaders),
			lookup(row, columns, discountHeaders),
		)

		products = append(products, Product{
			ID:             len(products) + 1,
			Name:           lookupOr(row, columns, nameHeaders, defaultName),
			Description:    lookupOr(row, columns, descriptionHeaders, defaultDescription),
			Price:          quote.Price,
			Discount:       quote.Discount,
			DiscountAmount: quote.DiscountAmount,
			FinalPrice:     quote.FinalPrice,
			DeliveryTime:   lookupOr(row, columns, deliveryHeaders, defaultDelivery),
			Image:          lookupOr(row, columns, imageHeaders, l.fallbackImage),
		})
	}

	return products, nil
}

// headerColumns maps each header cell to its column index. The first
// occurrence of a repeated header wins; unrecognized columns are carried but
// never looked up.
func headerColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for idx, cell := range header {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		if _, exists := columns[trimmed]; !exists {
			columns[trimmed] = idx
		}
	}
	return columns
}

func lookup(row []string, columns map[string]int, variants []string) string {
	for _, variant := range variants {
		idx, ok := columns[variant]
		if !ok || idx >= len(row) {
			continue
		}
		if value := strings.TrimSpace(row[idx]); value != "" {
			return value
		}
	}
	return ""
}

func lookupOr(row []string, columns map[string]int, variants []string, fallback string) string {
	if value := lookup(row, columns, variants); value != "" {
		return value
	}
	return fallback
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
