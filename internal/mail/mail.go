package mail

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/cleberrangel/pendientes-api/internal/config"
	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/metrics"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

// Message é um e-mail de texto simples
type Message struct {
	To      string
	CC      []string
	Subject string
	Body    string
}

// Sender entrega mensagens e informa apenas sucesso ou falha
type Sender interface {
	Send(ctx context.Context, msg Message) bool
}

// SMTPSender envia e-mails por um relay SMTP autenticado
type SMTPSender struct {
	dialer     *gomail.Dialer
	senderAddr string
	senderName string
	limiter    *rate.Limiter
}

// NewSMTPSender cria o remetente a partir da configuração SMTP
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	log := logger.Global()

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.InsecureSkipVerify {
		log.Warn().Msg("Verificação TLS do SMTP desabilitada")
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host}
	}

	s := &SMTPSender{
		dialer:     d,
		senderAddr: cfg.Sender,
		senderName: cfg.SenderName,
	}
	if s.senderAddr == "" {
		s.senderAddr = cfg.User
	}
	if cfg.SendInterval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(cfg.SendInterval), 1)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("sender", s.senderAddr).
		Dur("send_interval", cfg.SendInterval).
		Msg("Remetente SMTP configurado")

	return s
}

// Send entrega a mensagem. Erros são registrados em log e nunca propagados.
func (s *SMTPSender) Send(ctx context.Context, msg Message) bool {
	log := logger.Get(ctx).With().
		Str("to", msg.To).
		Int("cc", len(msg.CC)).
		Str("subject", msg.Subject).
		Logger()

	if strings.TrimSpace(msg.To) == "" {
		log.Warn().Msg("E-mail sem destinatário, ignorado")
		return false
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			log.Error().Err(err).Msg("Envio de e-mail cancelado aguardando intervalo")
			metrics.MailSendFailure.WithLabelValues(s.dialer.Host).Inc()
			return false
		}
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderAddr, s.senderName)
	m.SetHeader("To", msg.To)
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Msg("Erro ao enviar e-mail")
		metrics.MailSendFailure.WithLabelValues(s.dialer.Host).Inc()
		return false
	}

	log.Info().Msg("E-mail enviado")
	metrics.MailSendSuccess.WithLabelValues(s.dialer.Host).Inc()
	return true
}
