package services

import (
	"fmt"
	"time"

	"nasede/config"

	"gopkg.in/gomail.v2"
)

// EmailService envia emails transacionais do sistema
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	config *config.Config
}

// NewEmailService cria uma nova instância de EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		config: cfg,
	}
}

// SendEmail envia um email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar o email: %v", err)
	}

	return nil
}

// SendRequestDecisionNotification avisa o associado do resultado da triagem
func (s *EmailService) SendRequestDecisionNotification(to string, requestID uint, statusName string, response *string) error {
	subject := fmt.Sprintf("Sua solicitação #%d foi atualizada", requestID)

	body := fmt.Sprintf(`
		<h2>Atualização de solicitação</h2>
		<p>Sua solicitação #%d agora está com o status: <strong>%s</strong>.</p>
	`, requestID, statusName)

	if response != nil && *response != "" {
		body += fmt.Sprintf(`<p>Observação da diretoria: %s</p>`, *response)
	}

	body += fmt.Sprintf(`
		<p>Data: %s</p>
		<p>Em caso de dúvidas, procure a secretaria da associação.</p>
		<p>Atenciosamente,<br>Equipe Na Sede</p>
	`, time.Now().Format("02/01/2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}

// SendWelcomeNotification envia as boas-vindas a um associado recém-cadastrado
func (s *EmailService) SendWelcomeNotification(to, name, matricula string) error {
	subject := "Bem-vindo à associação"

	body := fmt.Sprintf(`
		<h2>Bem-vindo, %s!</h2>
		<p>Seu cadastro foi concluído com a matrícula <strong>%s</strong>.</p>
		<p>Acesse o portal para acompanhar notícias, eventos e solicitações.</p>
		<p>Atenciosamente,<br>Equipe Na Sede</p>
	`, name, matricula)

	return s.SendEmail(to, subject, body)
}
