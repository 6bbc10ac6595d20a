package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/dropforge-api/internal/application/supplier"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/pricing"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// Formatos soportados por HTTPFeed.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// maxFeedBytes límite de lectura del cuerpo de la respuesta.
const maxFeedBytes = 10 << 20

var _ supplier.FeedClient = (*HTTPFeed)(nil)

// HTTPFeed descarga el catálogo del proveedor por HTTP.
// Los descriptores mal formados se descartan; un error de red o un status no 2xx es un fallo del feed.
type HTTPFeed struct {
	url    string
	format string
	client *http.Client
	log    *logger.Logger
}

// NewHTTPFeed construye el cliente. format es json o xml.
func NewHTTPFeed(url, format string, timeout time.Duration, log *logger.Logger) (*HTTPFeed, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatJSON && format != FormatXML {
		return nil, fmt.Errorf("feed: formato no soportado %q", format)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &HTTPFeed{
		url:    url,
		format: format,
		client: &http.Client{Timeout: timeout},
		log:    log.Component("supplier_feed"),
	}, nil
}

// Fetch implementa supplier.FeedClient.
func (f *HTTPFeed) Fetch(ctx context.Context) ([]supplier.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: crear request: %w", err)
	}
	if f.format == FormatXML {
		req.Header.Set("Accept", "application/xml")
	} else {
		req.Header.Set("Accept", "application/json")
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: GET %s: %w", f.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed: GET %s: status %d", f.url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("feed: leer respuesta: %w", err)
	}

	var raw []rawItem
	if f.format == FormatXML {
		raw, err = decodeXML(body)
	} else {
		raw, err = decodeJSON(body)
	}
	if err != nil {
		return nil, err
	}

	items := make([]supplier.FeedItem, 0, len(raw))
	for _, r := range raw {
		item, ok := r.normalize()
		if !ok {
			f.log.Warn().Str("external_id", r.ID).Str("stock", r.Stock).Msg("descriptor descartado")
			continue
		}
		items = append(items, item)
	}
	f.log.Debug().Int("received", len(raw)).Int("accepted", len(items)).Msg("feed descargado")
	return items, nil
}

// rawItem descriptor tal como llega, antes de validar.
type rawItem struct {
	ID        string
	Title     string
	CostPrice string
	Stock     string
}

func (r rawItem) normalize() (supplier.FeedItem, bool) {
	id := strings.TrimSpace(r.ID)
	title := strings.TrimSpace(r.Title)
	if id == "" || title == "" {
		return supplier.FeedItem{}, false
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(r.CostPrice))
	if err != nil || cost.IsNegative() {
		return supplier.FeedItem{}, false
	}
	stock := normalizeStock(r.Stock)
	if !entity.IsValidStockStatus(stock) {
		return supplier.FeedItem{}, false
	}
	return supplier.FeedItem{ExternalID: id, Title: title, CostPrice: pricing.RoundCost(cost), StockFlag: stock}, true
}

// normalizeStock acepta "In Stock", "in-stock", "IN_STOCK" como in_stock.
func normalizeStock(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func decodeJSON(body []byte) ([]rawItem, error) {
	var payload []struct {
		ID        json.RawMessage `json:"id"`
		Title     string          `json:"title"`
		CostPrice json.RawMessage `json:"cost_price"`
		Stock     string          `json:"stock"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("feed: decodificar JSON: %w", err)
	}
	out := make([]rawItem, 0, len(payload))
	for _, p := range payload {
		out = append(out, rawItem{
			ID:        unquote(p.ID),
			Title:     p.Title,
			CostPrice: unquote(p.CostPrice),
			Stock:     p.Stock,
		})
	}
	return out, nil
}

// unquote admite números o strings JSON ("500" y 500 valen igual).
func unquote(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}

func decodeXML(body []byte) ([]rawItem, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("feed: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("feed: documento XML sin raíz")
	}
	var out []rawItem
	for _, el := range root.SelectElements("product") {
		id := el.SelectAttrValue("id", "")
		if id == "" {
			id = childText(el, "id")
		}
		out = append(out, rawItem{
			ID:        id,
			Title:     childText(el, "title"),
			CostPrice: childText(el, "cost_price"),
			Stock:     childText(el, "stock"),
		})
	}
	return out, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return c.Text()
	}
	return ""
}

// charsetReader decodifica feeds declarados como ISO-8859-1; el resto se lee tal cual.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	}
	return input, nil
}
