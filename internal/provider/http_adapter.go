package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
)

// Integration config params the HTTP adapter reads.
const (
	paramPayURL    = "pay_url"
	paramBindURL   = "bind_url"
	paramUnbindURL = "unbind_url"
	paramMerchant  = "merchant_id"
)

// HTTPAdapter is a generic JSON-over-HTTP adapter for providers exposing a
// plain REST contract. Provider-specific endpoints and credentials come
// from the integration config params, so one adapter type serves any
// provider speaking this shape.
type HTTPAdapter struct {
	alias  string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPAdapter creates an adapter for the given provider alias.
func NewHTTPAdapter(alias string, timeout time.Duration, logger *slog.Logger) *HTTPAdapter {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPAdapter{
		alias: alias,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With(slog.String("component", "http_adapter"), slog.String("provider", alias)),
	}
}

type payRequest struct {
	TransactionID string            `json:"transaction_id"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Terminal      string            `json:"terminal"`
	MerchantID    string            `json:"merchant_id,omitempty"`
	Data          map[string]string `json:"data,omitempty"`
}

type payResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pay implements Adapter.
func (a *HTTPAdapter) Pay(ctx context.Context, tx *domain.Transaction, meta *domain.TransactionMeta) error {
	url := tx.Config.Param(paramPayURL)
	if url == "" {
		return NewAdapterError(FailurePayment, a.alias, fmt.Errorf("config %s has no %s param", tx.Config.Name, paramPayURL))
	}

	body := payRequest{
		TransactionID: tx.ID.String(),
		Amount:        meta.Amount,
		Currency:      meta.Currency,
		Terminal:      meta.Terminal,
		MerchantID:    tx.Config.Param(paramMerchant),
		Data:          meta.Data,
	}

	var res payResponse
	if err := a.post(ctx, url, body, &res); err != nil {
		return NewAdapterError(FailurePayment, a.alias, err)
	}

	if res.Status != "ok" {
		return NewAdapterError(FailurePayment, a.alias,
			fmt.Errorf("provider declined: %s", res.Message))
	}

	return tx.MarkSucceeded()
}

type bindURLRequest struct {
	ClientID string `json:"client_id"`
	Terminal string `json:"terminal"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type bindURLResponse struct {
	URL string `json:"url"`
}

// BindURL implements Adapter.
func (a *HTTPAdapter) BindURL(ctx context.Context, clientID uuid.UUID, cfg *domain.IntegrationConfig, email, phone string) (string, error) {
	url := cfg.Param(paramBindURL)
	if url == "" {
		return "", NewAdapterError(FailureBind, a.alias, fmt.Errorf("config %s has no %s param", cfg.Name, paramBindURL))
	}

	var res bindURLResponse
	err := a.post(ctx, url, bindURLRequest{
		ClientID: clientID.String(),
		Terminal: cfg.Terminal,
		Email:    email,
		Phone:    phone,
	}, &res)
	if err != nil {
		return "", NewAdapterError(FailureBind, a.alias, err)
	}

	return res.URL, nil
}

type unbindRequest struct {
	CardID    string `json:"card_id"`
	BindToken string `json:"bind_token,omitempty"`
	Terminal  string `json:"terminal"`
}

type unbindResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Unbind implements Adapter. The endpoint comes from the selected config in
// the meta; a bound card's own config is the fallback.
func (a *HTTPAdapter) Unbind(ctx context.Context, card *domain.BankCard, meta *domain.TransactionMeta) error {
	url := ""
	if meta.Config != nil {
		url = meta.Config.Param(paramUnbindURL)
	}
	if url == "" && card.Bind != nil && card.Bind.Config != nil {
		url = card.Bind.Config.Param(paramUnbindURL)
	}
	if url == "" {
		return NewAdapterError(FailureUnbind, a.alias, fmt.Errorf("no %s param available for card %s", paramUnbindURL, card.ID))
	}

	var res unbindResponse
	err := a.post(ctx, url, unbindRequest{
		CardID:    card.ID.String(),
		BindToken: meta.Data["bind_token"],
		Terminal:  meta.Terminal,
	}, &res)
	if err != nil {
		return NewAdapterError(FailureUnbind, a.alias, err)
	}

	switch res.Status {
	case "ok":
		return nil
	case "unknown_card":
		return fmt.Errorf("%w: %s", ErrCardReferenceInvalid, res.Message)
	default:
		return NewAdapterError(FailureUnbind, a.alias,
			fmt.Errorf("provider refused unbind: %s", res.Message))
	}
}

func (a *HTTPAdapter) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		a.logger.Warn("provider returned non-200",
			slog.Int("status", res.StatusCode),
			slog.String("url", url))
		return fmt.Errorf("provider returned status %d", res.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
