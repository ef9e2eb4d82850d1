package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"blinkfit/internal/model"
	"blinkfit/internal/model/contact"
	"blinkfit/internal/pkg/id"
	"blinkfit/internal/pkg/mail"
	contactRepo "blinkfit/internal/repository/contact"
)

var (
	ErrInvalidTransition = errors.New("contact status can only move forward")
)

// ContactService 联系表单服务
type ContactService struct {
	repo   contactRepo.ContactRepository
	mailer *mail.Mailer
}

// NewContactService 创建联系表单服务
func NewContactService(repo contactRepo.ContactRepository, mailer *mail.Mailer) *ContactService {
	return &ContactService{
		repo:   repo,
		mailer: mailer,
	}
}

// SubmitInput 表单提交参数
type SubmitInput struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	Type      string
	ClientIP  string
	UserAgent string
}

// Submit 提交联系表单
// 记录先落库，管理员通知邮件异步发送，失败不影响提交结果
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (*contact.Contact, error) {
	c := &contact.Contact{
		ID:        id.New(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Type:      contact.Type(in.Type),
		ClientIP:  in.ClientIP,
		UserAgent: in.UserAgent,
	}

	c.Normalize()
	if fields := c.Validate(); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error().Err(err).Msg("failed to save contact submission")
		return nil, err
	}

	if s.mailer.Enabled() && s.mailer.AdminAddr() != "" {
		body := fmt.Sprintf(
			"New contact submission\n\nName: %s\nEmail: %s\nType: %s\nSubject: %s\n\n%s\n",
			c.Name, c.Email, c.Type, c.Subject, c.Message)
		s.mailer.SendAsync(s.mailer.AdminAddr(), "[BlinkFit] New contact: "+c.Subject, body)
	}

	log.Info().Str("contact_id", c.ID).Str("type", string(c.Type)).Msg("contact submission received")

	return c, nil
}

// UpdateStatusInput 处理状态更新参数
type UpdateStatusInput struct {
	Status    string
	Priority  string
	ReplyNote string
}

// UpdateStatus 更新提交的处理状态
// 状态只能前进（new → read → replied → closed），不允许回退
func (s *ContactService) UpdateStatus(ctx context.Context, adminID, contactID string, in UpdateStatusInput) (*contact.Contact, error) {
	c, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, ErrNotFound
	}

	next := contact.Status(in.Status)
	if !next.IsValid() {
		return nil, NewValidationError([]model.FieldError{
			{Field: "status", Message: "status must be one of: new, read, replied, closed"},
		})
	}
	if !c.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if in.Priority != "" {
		p := contact.Priority(in.Priority)
		if !p.IsValid() {
			return nil, NewValidationError([]model.FieldError{
				{Field: "priority", Message: "priority must be one of: low, normal, high"},
			})
		}
		c.Priority = p
	}

	c.Status = next
	if next == contact.StatusReplied {
		now := time.Now()
		c.RepliedAt = &now
		c.RepliedBy = adminID
		c.ReplyNote = in.ReplyNote
	}

	if err := s.repo.UpdateStatus(ctx, c); err != nil {
		log.Error().Err(err).Str("contact_id", contactID).Msg("failed to update contact status")
		return nil, err
	}

	log.Info().
		Str("contact_id", contactID).
		Str("status", string(next)).
		Str("admin_id", adminID).
		Msg("contact status updated")

	return c, nil
}

// List 查询提交列表
func (s *ContactService) List(ctx context.Context, status string, page, limit int64) ([]*contact.Contact, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var filter *contact.Status
	if status != "" {
		st := contact.Status(status)
		if !st.IsValid() {
			return nil, model.Pagination{}, NewValidationError([]model.FieldError{
				{Field: "status", Message: "status must be one of: new, read, replied, closed"},
			})
		}
		filter = &st
	}

	contacts, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list contacts")
		return nil, model.Pagination{}, err
	}

	return contacts, model.NewPagination(page, limit, total), nil
}

// CountNew 未读提交数量（管理员仪表盘）
func (s *ContactService) CountNew(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, contact.StatusNew)
}
