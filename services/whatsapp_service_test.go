package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nasede/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTwilioService(baseURL string) *TwilioWhatsAppService {
	cfg := &config.Config{}
	cfg.Twilio.AccountSid = "AC123"
	cfg.Twilio.AuthToken = "secreto"
	cfg.Twilio.FromNumber = "+5511999990000"
	cfg.Twilio.BaseURL = baseURL
	return NewTwilioWhatsAppService(cfg)
}

func TestTwilioSendParsesMessageSid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secreto", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "whatsapp:+5511999990000", r.FormValue("From"))
		assert.Equal(t, "whatsapp:+5511888880000", r.FormValue("To"))
		assert.Equal(t, "Olá!", r.FormValue("Body"))

		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<TwilioResponse>
  <Message>
    <Sid>SM0123456789abcdef</Sid>
    <Status>queued</Status>
  </Message>
</TwilioResponse>`))
	}))
	defer server.Close()

	service := newTwilioService(server.URL)
	sid, err := service.Send("+5511888880000", "Olá!")
	require.NoError(t, err)
	assert.Equal(t, "SM0123456789abcdef", sid)
}

func TestTwilioSendSurfacesRestException(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<TwilioResponse>
  <RestException>
    <Code>21211</Code>
    <Message>The 'To' number is not a valid phone number.</Message>
    <Status>400</Status>
  </RestException>
</TwilioResponse>`))
	}))
	defer server.Close()

	service := newTwilioService(server.URL)
	sid, err := service.Send("numero-invalido", "Olá!")
	require.Error(t, err)
	assert.Empty(t, sid)
	assert.Contains(t, err.Error(), "not a valid phone number")
}

func TestTwilioSendMissingSid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><TwilioResponse></TwilioResponse>`))
	}))
	defer server.Close()

	service := newTwilioService(server.URL)
	_, err := service.Send("+5511888880000", "Olá!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sid")
}
