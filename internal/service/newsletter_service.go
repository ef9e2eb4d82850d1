package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/id"
	"blinkfit/internal/pkg/mail"
	authRepo "blinkfit/internal/repository/auth"
)

// NewsletterService 邮件订阅服务
// 订阅者复用 users 集合：没有密码的 user 角色账号即纯订阅者
type NewsletterService struct {
	userRepo authRepo.UserRepository
	mailer   *mail.Mailer
}

// NewNewsletterService 创建邮件订阅服务
func NewNewsletterService(userRepo authRepo.UserRepository, mailer *mail.Mailer) *NewsletterService {
	return &NewsletterService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

// Subscribe 订阅邮件
// 邮箱已注册时只打开订阅标志；重复订阅幂等成功
func (s *NewsletterService) Subscribe(ctx context.Context, email, name string) error {
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Subscribed {
			return nil
		}
		if err := s.userRepo.SetSubscribed(ctx, existing.ID, true); err != nil {
			log.Error().Err(err).Str("user_id", existing.ID).Msg("failed to resubscribe user")
			return err
		}
		log.Info().Str("user_id", existing.ID).Msg("newsletter resubscribed")
		return nil
	}

	u := &auth.User{
		ID:         id.New(),
		Name:       name,
		Email:      email,
		Role:       auth.RoleUser,
		IsActive:   true,
		Subscribed: true,
	}
	if u.Name == "" {
		u.Name = email
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		// 并发订阅撞上唯一索引，按幂等成功处理
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		log.Error().Err(err).Msg("failed to create subscriber")
		return err
	}

	s.mailer.SendAsync(email, "Welcome to the BlinkFit newsletter",
		"Hi "+u.Name+",\n\nThanks for subscribing! You'll receive eye-health tips and product updates from the BlinkFit team.\n\nIf this wasn't you, just ignore this email.\n")

	log.Info().Str("user_id", u.ID).Msg("newsletter subscription created")

	return nil
}

// Unsubscribe 退订邮件
// 未知邮箱也返回成功，不向调用方泄露注册状态
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if !existing.Subscribed {
		return nil
	}

	if err := s.userRepo.SetSubscribed(ctx, existing.ID, false); err != nil {
		log.Error().Err(err).Str("user_id", existing.ID).Msg("failed to unsubscribe user")
		return err
	}

	log.Info().Str("user_id", existing.ID).Msg("newsletter unsubscribed")

	return nil
}
