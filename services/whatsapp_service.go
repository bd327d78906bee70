package services

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nasede/config"
	"nasede/utils"

	"github.com/beevik/etree"
)

// WhatsAppSender envia mensagens de WhatsApp e retorna o identificador da mensagem
type WhatsAppSender interface {
	Send(toNumber, body string) (string, error)
}

// TwilioWhatsAppService envia mensagens via a API REST da Twilio
type TwilioWhatsAppService struct {
	accountSid string
	authToken  string
	fromNumber string
	baseURL    string
	client     *http.Client
}

// NewTwilioWhatsAppService cria uma nova instância de TwilioWhatsAppService
func NewTwilioWhatsAppService(cfg *config.Config) *TwilioWhatsAppService {
	return &TwilioWhatsAppService{
		accountSid: cfg.Twilio.AccountSid,
		authToken:  cfg.Twilio.AuthToken,
		fromNumber: cfg.Twilio.FromNumber,
		baseURL:    cfg.Twilio.BaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send envia uma mensagem de WhatsApp e retorna o Sid atribuído pela Twilio.
// A API responde em XML, que é lido com etree.
func (s *TwilioWhatsAppService) Send(toNumber, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages", s.baseURL, s.accountSid)

	form := url.Values{}
	form.Set("From", "whatsapp:"+s.fromNumber)
	form.Set("To", "whatsapp:"+toNumber)
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("erro ao montar a requisição para a Twilio: %w", err)
	}
	req.SetBasicAuth(s.accountSid, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		utils.WhatsAppMessagesTotal.WithLabelValues("erro").Inc()
		return "", fmt.Errorf("erro ao chamar a Twilio: %w", err)
	}
	defer resp.Body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		utils.WhatsAppMessagesTotal.WithLabelValues("erro").Inc()
		return "", fmt.Errorf("erro ao ler a resposta da Twilio: %w", err)
	}

	if resp.StatusCode >= 400 {
		utils.WhatsAppMessagesTotal.WithLabelValues("erro").Inc()
		if msg := doc.FindElement("//RestException/Message"); msg != nil {
			return "", fmt.Errorf("a Twilio recusou a mensagem: %s", msg.Text())
		}
		return "", fmt.Errorf("a Twilio recusou a mensagem: status %d", resp.StatusCode)
	}

	sid := doc.FindElement("//Message/Sid")
	if sid == nil {
		utils.WhatsAppMessagesTotal.WithLabelValues("erro").Inc()
		return "", fmt.Errorf("resposta da Twilio sem o Sid da mensagem")
	}

	utils.WhatsAppMessagesTotal.WithLabelValues("enviada").Inc()
	return sid.Text(), nil
}
