package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User 用户实体（admin / doctor / 普通订阅用户）
// ID使用UUID格式（string），避免ObjectID转换的麻烦
// Email统一小写存储，保证大小写不敏感的唯一性
type User struct {
	ID            string         `bson:"_id,omitempty" json:"id"`                    // UUID格式的ID
	Name          string         `bson:"name" json:"name"`                           // 显示名称
	Email         string         `bson:"email" json:"email"`                         // 邮箱（唯一，小写）
	Password      string         `bson:"password,omitempty" json:"-"`                // 密码哈希（不返回；仅订阅newsletter的用户没有密码）
	Role          Role           `bson:"role" json:"role"`                           // 角色
	EmailVerified bool           `bson:"email_verified" json:"email_verified"`       // 邮箱/账号是否已通过管理员验证
	IsActive      bool           `bson:"is_active" json:"is_active"`                 // 是否启用
	Subscribed    bool           `bson:"subscribed" json:"subscribed"`               // 是否订阅newsletter
	Profile       *DoctorProfile `bson:"profile,omitempty" json:"profile,omitempty"` // 医生资料
	LastLoginAt   *time.Time     `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// DoctorProfile 医生资料
type DoctorProfile struct {
	Specialization   string     `bson:"specialization,omitempty" json:"specialization,omitempty"`       // 专科方向
	LicenseNumber    string     `bson:"license_number,omitempty" json:"license_number,omitempty"`       // 执业编号
	ExperienceYears  int        `bson:"experience_years,omitempty" json:"experience_years,omitempty"`   // 从业年限
	Hospital         string     `bson:"hospital,omitempty" json:"hospital,omitempty"`                   // 所属机构
	IsVerifiedDoctor bool       `bson:"is_verified_doctor" json:"is_verified_doctor"`                   // 是否已认证
	VerifiedAt       *time.Time `bson:"verified_at,omitempty" json:"verified_at,omitempty"`             // 认证时间
	VerifiedBy       string     `bson:"verified_by,omitempty" json:"verified_by,omitempty"`             // 执行认证的管理员ID
	VerifyReason     string     `bson:"verify_reason,omitempty" json:"verify_reason,omitempty"`         // 认证/取消认证原因
}

// IsNewsletterOnly 是否是仅订阅newsletter的身份（没有密码，不能登录）
func (u *User) IsNewsletterOnly() bool {
	return u.Password == ""
}

// Role 用户角色
type Role string

const (
	RoleUser      Role = "user"      // 普通用户/订阅者
	RoleDoctor    Role = "doctor"    // 医生（内容作者）
	RoleAdmin     Role = "admin"     // 管理员
	RoleModerator Role = "moderator" // 内容审核
)

// IsValid 检查角色是否有效
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleDoctor, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// String 返回角色字符串
func (r Role) String() string {
	return string(r)
}

// Collection 返回集合名称
func (u *User) Collection() string { return "users" }

// EnsureIndexes 创建和维护索引
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "email_verified", Value: 1}},
			Options: options.Index().SetName("idx_role_verified"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
