package service

import (
	"Gather_Hub/internal/pkg"
	"Gather_Hub/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

var codeSubjects = map[string]string{
	"register": "注册验证",
	"reset":    "重置密码",
}

// SendCode 发送验证码。先写 pending 键，邮件发出去之后再转为 confirmed，
// 发送失败时清除 pending，避免没收到邮件的验证码可被使用。
func (s *EmailService) SendCode(scope, email string) error {
	subject, ok := codeSubjects[scope]
	if !ok {
		return ErrValidation
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPending(scope, email, code); err != nil {
		return err
	}

	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject+"验证码", html); err != nil {
		_ = s.rds.DeletePending(scope, email)
		return err
	}

	if err = s.rds.Confirm(scope, email); err != nil {
		_ = s.rds.DeletePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmed(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteConfirmed(scope, email); err != nil {
		return false, err
	}
	return true, nil
}

// SMTPNotifier 订阅通知的邮件实现
type SMTPNotifier struct {
	cfg pkg.SMTPConfig
}

func NewSMTPNotifier(cfg pkg.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) Send(toName, toEmail, subject, body string) error {
	return pkg.SendEmail(n.cfg, toEmail, subject, body)
}
