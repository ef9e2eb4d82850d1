package contact

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinkfit/internal/model"
)

// Contact 联系表单提交记录
// 只通过公开端点创建，创建后只有状态流转（管理员操作）
type Contact struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Email     string     `bson:"email" json:"email"`
	Subject   string     `bson:"subject" json:"subject"`
	Message   string     `bson:"message" json:"message"`
	Type      Type       `bson:"type" json:"type"`         // 来信类型
	Status    Status     `bson:"status" json:"status"`     // 处理状态
	Priority  Priority   `bson:"priority" json:"priority"` // 优先级
	ClientIP  string     `bson:"client_ip,omitempty" json:"client_ip,omitempty"`
	UserAgent string     `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RepliedAt *time.Time `bson:"replied_at,omitempty" json:"replied_at,omitempty"` // 回复时间
	RepliedBy string     `bson:"replied_by,omitempty" json:"replied_by,omitempty"` // 回复的管理员ID
	ReplyNote string     `bson:"reply_note,omitempty" json:"reply_note,omitempty"` // 回复备注
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// Type 来信类型
type Type string

const (
	TypeGeneral     Type = "general"     // 一般咨询
	TypeSupport     Type = "support"     // 产品支持
	TypeFeedback    Type = "feedback"    // 意见反馈
	TypePartnership Type = "partnership" // 商务合作
)

// IsValid 检查类型是否有效
func (t Type) IsValid() bool {
	switch t {
	case TypeGeneral, TypeSupport, TypeFeedback, TypePartnership:
		return true
	}
	return false
}

// Status 处理状态
// 流转只允许向前：new -> read -> replied -> closed
type Status string

const (
	StatusNew     Status = "new"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
	StatusClosed  Status = "closed"
)

// IsValid 检查状态是否有效
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusClosed:
		return true
	}
	return false
}

// rank 状态先后顺序
func (s Status) rank() int {
	switch s {
	case StatusNew:
		return 0
	case StatusRead:
		return 1
	case StatusReplied:
		return 2
	case StatusClosed:
		return 3
	}
	return -1
}

// CanTransitionTo 是否允许流转到目标状态
// 只允许向前流转，不允许回退到更早的状态；原地不动视为幂等更新
func (s Status) CanTransitionTo(target Status) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	return target.rank() >= s.rank()
}

// Priority 优先级
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// IsValid 检查优先级是否有效
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Normalize 持久化前的规范化处理
func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)

	if c.Type == "" {
		c.Type = TypeGeneral
	}
	if c.Status == "" {
		c.Status = StatusNew
	}
	if c.Priority == "" {
		c.Priority = PriorityNormal
	}
}

// Validate 校验实体，返回字段级错误
// 先调用 Normalize 再调用 Validate
func (c *Contact) Validate() []model.FieldError {
	var errs []model.FieldError

	if c.Name == "" {
		errs = append(errs, model.FieldError{Field: "name", Message: "name is required"})
	}
	if c.Email == "" {
		errs = append(errs, model.FieldError{Field: "email", Message: "email is required"})
	}
	if c.Subject == "" {
		errs = append(errs, model.FieldError{Field: "subject", Message: "subject is required"})
	}
	if c.Message == "" {
		errs = append(errs, model.FieldError{Field: "message", Message: "message is required"})
	}
	if !c.Type.IsValid() {
		errs = append(errs, model.FieldError{Field: "type", Message: "invalid type"})
	}

	return errs
}

// Collection 返回集合名称
func (c *Contact) Collection() string { return "contacts" }

// EnsureIndexes 创建和维护索引
func (c *Contact) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_status_created"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
