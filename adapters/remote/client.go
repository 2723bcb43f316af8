// Package remote delegates pricing to the production pricing service.
// The engine treats the service's totals as authoritative; this client
// only enforces the response contract and never fabricates a price from
// partial data.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"print-cost/core/engine"
	"print-cost/core/types"
	"print-cost/internal/errors"
)

// DefaultTimeout bounds one pricing request
const DefaultTimeout = 10 * time.Second

// Client is an HTTP client for the remote pricing service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for a service base URL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// estimateRequest is the wire request: the product identifier, quantity
// and a parameter bag equivalent to the job spec, including the resolved
// trim size for custom formats.
type estimateRequest struct {
	ProductType  string            `json:"product_type"`
	Quantity     int               `json:"quantity"`
	TrimWidthMM  float64           `json:"trim_width_mm"`
	TrimHeightMM float64           `json:"trim_height_mm"`
	Params       map[string]string `json:"params"`
}

type estimateResponse struct {
	PricePerItem   decimal.Decimal `json:"price_per_item"`
	Materials      []wireLine      `json:"materials"`
	Services       []wireLine      `json:"services"`
	ProductionTime string          `json:"production_time,omitempty"`
}

type wireLine struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Price implements engine.RemotePricer
func (c *Client) Price(ctx context.Context, spec *types.ProductJobSpec, trim types.TrimSize) (*engine.RemoteQuote, error) {
	req := estimateRequest{
		ProductType:  spec.ProductType,
		Quantity:     spec.Quantity,
		TrimWidthMM:  trim.WidthMM,
		TrimHeightMM: trim.HeightMM,
		Params:       specParams(spec),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Internal("cannot encode pricing request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimate", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("cannot build pricing request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Remote("pricing service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Remote(fmt.Sprintf("pricing service returned status %d", resp.StatusCode), nil)
	}

	var decoded estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Remote("cannot decode pricing response", err)
	}

	c.logger.Debug("remote pricing response",
		zap.String("product", spec.ProductType),
		zap.Int("quantity", spec.Quantity),
		zap.Duration("elapsed", time.Since(start)))

	if len(decoded.Materials) == 0 || len(decoded.Services) == 0 {
		return nil, errors.New(errors.TypeEmptyLines,
			"pricing service returned no material or service lines")
	}
	if !decoded.PricePerItem.IsPositive() {
		return nil, errors.Newf(errors.TypeNonPositivePrice,
			"pricing service returned non-positive per-item price %s", decoded.PricePerItem)
	}

	return &engine.RemoteQuote{
		PricePerItem:   decoded.PricePerItem,
		Materials:      toLines(decoded.Materials),
		Services:       toLines(decoded.Services),
		ProductionTime: decoded.ProductionTime,
	}, nil
}

func toLines(wire []wireLine) []types.Line {
	lines := make([]types.Line, 0, len(wire))
	for _, w := range wire {
		lines = append(lines, types.Line{
			Name:      w.Name,
			Quantity:  w.Quantity,
			UnitPrice: w.UnitPrice,
			Total:     w.Total,
		})
	}
	return lines
}

// specParams flattens the spec option bag onto the wire
func specParams(spec *types.ProductJobSpec) map[string]string {
	params := map[string]string{
		"format":        spec.Format,
		"sides":         fmt.Sprintf("%d", spec.Sides),
		"paper_type":    spec.PaperType,
		"paper_density": fmt.Sprintf("%d", spec.PaperDensity),
		"lamination":    string(spec.Lamination),
		"urgency":       string(spec.Urgency),
		"customer_tier": string(spec.CustomerTier),
	}
	if spec.Pages > 0 {
		params["pages"] = fmt.Sprintf("%d", spec.Pages)
	}
	if spec.Cutting {
		params["cutting"] = "true"
	}
	if spec.Folding {
		params["folding"] = "true"
	}
	if spec.Magnetic {
		params["magnetic"] = "true"
	}
	if spec.RoundedCorners {
		params["rounded_corners"] = "true"
	}
	return params
}
