package payme

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edume/config"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePayLinkOffline(t *testing.T) {
	client := &Client{
		MerchantID:  "merchant-1",
		CheckoutURL: "https://checkout.paycom.uz",
		http:        resty.New(),
	}

	link, err := client.GeneratePayLink(42, 1000000)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://checkout.paycom.uz/"))

	encoded := strings.TrimPrefix(link, "https://checkout.paycom.uz/")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "m=merchant-1;ac.order_id=42;a=1000000", string(decoded))
}

func TestGeneratePayLinkReceipt(t *testing.T) {
	t.Run("creates a hosted receipt", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("X-Auth")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":{"receipt":{"_id":"receipt-abc"}}}`))
		}))
		defer server.Close()

		client := &Client{
			MerchantID:   "merchant-1",
			CheckoutURL:  server.URL,
			SubscribeKey: "sub-key",
			http:         resty.New().SetTimeout(2 * time.Second),
		}

		link, err := client.GeneratePayLink(7, 500000)
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/receipt-abc", link)
		assert.Equal(t, "merchant-1:sub-key", gotAuth)
	})

	t.Run("gateway error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":{"code":-31601,"message":"merchant not found"}}`))
		}))
		defer server.Close()

		client := &Client{
			MerchantID:   "merchant-1",
			CheckoutURL:  server.URL,
			SubscribeKey: "sub-key",
			http:         resty.New().SetTimeout(2 * time.Second),
		}

		_, err := client.GeneratePayLink(7, 500000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "merchant not found")
	})

	t.Run("missing receipt id is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":{}}`))
		}))
		defer server.Close()

		client := &Client{
			MerchantID:   "merchant-1",
			CheckoutURL:  server.URL,
			SubscribeKey: "sub-key",
			http:         resty.New().SetTimeout(2 * time.Second),
		}

		_, err := client.GeneratePayLink(7, 500000)
		require.Error(t, err)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := &Client{
			MerchantID:   "merchant-1",
			CheckoutURL:  server.URL,
			SubscribeKey: "sub-key",
			http:         resty.New().SetTimeout(2 * time.Second),
		}

		_, err := client.GeneratePayLink(7, 500000)
		require.Error(t, err)
	})
}

func TestNewClient(t *testing.T) {
	config.AppConfig = &config.Config{
		PaymeMerchantID:  "merchant-1",
		PaymeCheckoutURL: "https://checkout.paycom.uz",
	}

	client := NewClient()
	assert.Equal(t, "merchant-1", client.MerchantID)
	assert.Equal(t, "https://checkout.paycom.uz", client.CheckoutURL)
	assert.Empty(t, client.SubscribeKey)
}
