package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sooqly/backend/internal/domain/tracking"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 4 * 1024 * 1024 // 4MB max response

// Client implements tracking.CarrierClient against the carrier's open API
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a carrier client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Fetch posts one tracking lookup and maps the outcome to typed results.
//
// Failure classes:
//   - non-2xx            -> *tracking.CarrierAPIError, message sanitized by status
//   - 2xx, success=false -> *tracking.CarrierLogicalError with the carrier's message
//   - 2xx, no shipments  -> a report with zero shipments (expected for fresh shipments)
func (c *Client) Fetch(ctx context.Context, orderID uuid.UUID, orderNumber, trackingNumber string) (*tracking.CarrierReport, error) {
	body, err := json.Marshal(trackingRequest{
		OrderID:        orderID.String(),
		OrderNumber:    orderNumber,
		TrackingNumber: trackingNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to marshal request: %w", err)
	}

	url := c.config.APIBaseURL + c.config.TrackingPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("X-Merchant-Code", c.config.MerchantCode)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &tracking.CarrierAPIError{Message: tracking.MsgCarrierConnectivity}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &tracking.CarrierAPIError{Message: tracking.MsgCarrierConnectivity}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, resp.Status, respBody)
	}

	var envelope TrackingResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &tracking.CarrierAPIError{
			HTTPStatus: resp.StatusCode,
			Message:    tracking.MsgCarrierConnectivity,
		}
	}

	if !envelope.Success {
		message := envelope.ErrorMessage()
		if message == "" {
			message = tracking.MsgNoTrackingInfo
		}
		return nil, &tracking.CarrierLogicalError{Message: message}
	}

	report := &tracking.CarrierReport{
		OrderID:     envelope.OrderID,
		OrderNumber: envelope.OrderNumber,
		Shipments:   make([]tracking.Shipment, 0, len(envelope.Shipments)),
	}
	for i := range envelope.Shipments {
		report.Shipments = append(report.Shipments, envelope.Shipments[i].toDomain())
	}
	return report, nil
}

// apiError maps a non-2xx response to a sanitized CarrierAPIError.
//
// Status mapping: 500 gets a generic try-later message (raw 500 bodies are
// often HTML and must not leak to the end user), 404 means the carrier has
// nothing for this order, 400 surfaces the carrier's own message because it
// is usually actionable, everything else gets the generic connectivity text.
func apiError(statusCode int, statusText string, body []byte) *tracking.CarrierAPIError {
	switch statusCode {
	case http.StatusInternalServerError:
		return &tracking.CarrierAPIError{
			HTTPStatus: statusCode,
			Message:    tracking.MsgCarrierUnavailable,
		}
	case http.StatusNotFound:
		return &tracking.CarrierAPIError{
			HTTPStatus: statusCode,
			Message:    tracking.MsgNoTrackingInfo,
		}
	case http.StatusBadRequest:
		return &tracking.CarrierAPIError{
			HTTPStatus: statusCode,
			Message:    badRequestMessage(statusText, body),
		}
	default:
		return &tracking.CarrierAPIError{
			HTTPStatus: statusCode,
			Message:    tracking.MsgCarrierConnectivity,
		}
	}
}

// badRequestMessage extracts the carrier's own message from a 400 body,
// falling back to the raw text, then the HTTP status text.
func badRequestMessage(statusText string, body []byte) string {
	var envelope TrackingResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		if message := envelope.ErrorMessage(); message != "" {
			return message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return statusText
}

// Ensure Client implements CarrierClient
var _ tracking.CarrierClient = (*Client)(nil)
