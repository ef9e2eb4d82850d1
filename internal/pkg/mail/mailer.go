package mail

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"

	"blinkfit/internal/config"
)

// Mailer SMTP 邮件发送器
// 所有邮件都是尽力而为：主记录先落库，发信失败只记日志，不回滚也不影响请求结果
type Mailer struct {
	addr      string
	host      string
	username  string
	password  string
	from      string
	adminAddr string
	enabled   bool
}

// New 创建邮件发送器
// 未配置 SMTP 主机时返回关闭状态的 Mailer，所有发送调用直接跳过
func New(cfg *config.MailConfig) *Mailer {
	m := &Mailer{
		addr:      cfg.Host + ":" + cfg.Port,
		host:      cfg.Host,
		username:  cfg.Username,
		password:  cfg.Password,
		from:      cfg.From,
		adminAddr: cfg.AdminAddr,
		enabled:   cfg.Host != "",
	}
	if !m.enabled {
		log.Warn().Msg("SMTP not configured, outbound email disabled")
	}
	return m
}

// Enabled 邮件功能是否开启
func (m *Mailer) Enabled() bool {
	return m != nil && m.enabled
}

// AdminAddr 管理员通知收件地址
func (m *Mailer) AdminAddr() string {
	return m.adminAddr
}

// Send 同步发送一封纯文本邮件
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, to, subject, body))

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(m.addr, auth, m.from, []string{to}, msg)
}

// SendAsync 异步发送，失败只记日志
func (m *Mailer) SendAsync(to, subject, body string) {
	if !m.Enabled() {
		return
	}

	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.Warn().
				Err(err).
				Str("to", to).
				Str("subject", subject).
				Msg("failed to send email")
		}
	}()
}
