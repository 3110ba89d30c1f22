package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/gateway"
)

// mockCardService mocks the CardService interface.
type mockCardService struct {
	mock.Mock
}

func (m *mockCardService) GetCards(ctx context.Context, clientID uuid.UUID, cardType domain.CardType, checkCtx map[string]string) ([]gateway.BankCardView, error) {
	args := m.Called(ctx, clientID, cardType, checkCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.BankCardView), args.Error(1)
}

func (m *mockCardService) RemoveBankCard(ctx context.Context, cardID uuid.UUID) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func (m *mockCardService) BindCard(ctx context.Context, req gateway.BindCardRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestCardHandler_ListCards(t *testing.T) {
	t.Run("payout listing forwards check context", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		clientID := uuid.New()

		views := []gateway.BankCardView{{ID: uuid.New(), Mask: "411111******1111"}}
		service.On("GetCards", mock.Anything, clientID, domain.CardTypePayout,
			map[string]string{"country": "DE"}).Return(views, nil)

		req := authenticatedRequest(t, http.MethodGet, "/cards?type=payout&country=DE", clientID, nil)
		rr := httptest.NewRecorder()
		handler.ListCards(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp CardListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Cards, 1)
		assert.Equal(t, views[0].ID, resp.Cards[0].ID)
	})

	t.Run("recurrent listing takes no check context", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		clientID := uuid.New()

		service.On("GetCards", mock.Anything, clientID, domain.CardTypeRecurrent,
			map[string]string(nil)).Return([]gateway.BankCardView{}, nil)

		req := authenticatedRequest(t, http.MethodGet, "/cards?type=recurrent&country=DE", clientID, nil)
		rr := httptest.NewRecorder()
		handler.ListCards(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid type", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		clientID := uuid.New()

		service.On("GetCards", mock.Anything, clientID, domain.CardType("credit"), map[string]string(nil)).
			Return(nil, domain.NewValidationError("card_type", "must be payout or recurrent", domain.ErrInvalidCardType))

		req := authenticatedRequest(t, http.MethodGet, "/cards?type=credit", clientID, nil)
		rr := httptest.NewRecorder()
		handler.ListCards(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCardHandler_BindCard(t *testing.T) {
	t.Run("returns bind url", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		clientID := uuid.New()

		service.On("BindCard", mock.Anything, mock.MatchedBy(func(req gateway.BindCardRequest) bool {
			return req.ClientID == clientID && req.Company == "acme"
		})).Return("https://pay.example.com/bind/abc", nil)

		body := BindCardRequest{Company: "acme", Method: "card", Provider: "demo"}
		rr := httptest.NewRecorder()
		handler.BindCard(rr, authenticatedRequest(t, http.MethodPost, "/cards/bind", clientID, body))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp BindCardResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "https://pay.example.com/bind/abc", resp.URL)
	})

	t.Run("invalid email rejected before the service", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)

		body := BindCardRequest{Company: "acme", Method: "card", Provider: "demo", Email: "not-an-email"}
		rr := httptest.NewRecorder()
		handler.BindCard(rr, authenticatedRequest(t, http.MethodPost, "/cards/bind", uuid.New(), body))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		service.AssertNotCalled(t, "BindCard")
	})
}

func TestCardHandler_RemoveCard(t *testing.T) {
	withChiParam := func(r *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("removed", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		cardID := uuid.New()

		service.On("RemoveBankCard", mock.Anything, cardID).Return(nil)

		req := authenticatedRequest(t, http.MethodDelete, "/cards/"+cardID.String(), uuid.New(), nil)
		rr := httptest.NewRecorder()
		handler.RemoveCard(rr, withChiParam(req, "id", cardID.String()))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("unbind failure reads as bad gateway, card kept", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		cardID := uuid.New()

		service.On("RemoveBankCard", mock.Anything, cardID).
			Return(gateway.NewGeneralGatewayError("card unbind failed", errors.New("upstream timeout")))

		req := authenticatedRequest(t, http.MethodDelete, "/cards/"+cardID.String(), uuid.New(), nil)
		rr := httptest.NewRecorder()
		handler.RemoveCard(rr, withChiParam(req, "id", cardID.String()))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("unknown card", func(t *testing.T) {
		service := &mockCardService{}
		handler := NewCardHandler(service, nil)
		cardID := uuid.New()

		service.On("RemoveBankCard", mock.Anything, cardID).Return(gateway.ErrBankCardNotFound)

		req := authenticatedRequest(t, http.MethodDelete, "/cards/"+cardID.String(), uuid.New(), nil)
		rr := httptest.NewRecorder()
		handler.RemoveCard(rr, withChiParam(req, "id", cardID.String()))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
