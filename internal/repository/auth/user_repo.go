package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinkfit/internal/model/auth"
)

// UserRepository 用户仓库接口（供 service 层依赖）
type UserRepository interface {
	Create(ctx context.Context, user *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByEmailAndRole(ctx context.Context, email string, role auth.Role) (*auth.User, error)
	UpdateLastLoginAt(ctx context.Context, id string) error
	SetVerification(ctx context.Context, id string, verified bool, adminID, reason string) error
	SetSubscribed(ctx context.Context, id string, subscribed bool) error
	Delete(ctx context.Context, id string) error
	ListByRole(ctx context.Context, role auth.Role, verified *bool, page, limit int64) ([]*auth.User, int64, error)
	CountByRole(ctx context.Context, role auth.Role, verified *bool) (int64, error)
}

// UserRepo 用户仓库
// 使用UUID作为ID，无需ObjectID转换
type UserRepo struct {
	collection *mongo.Collection
}

var _ UserRepository = (*UserRepo)(nil)

// NewUserRepo 创建用户仓库
func NewUserRepo(db *mongo.Database) *UserRepo {
	var u auth.User
	return &UserRepo{
		collection: db.Collection(u.Collection()),
	}
}

// Create 创建用户
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID 根据ID查询用户
func (r *UserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail 根据邮箱查询用户
// 邮箱入库时已统一小写，调用方负责传入小写后的值
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailAndRole 根据邮箱和角色查询用户
// 角色是查询条件的一部分：doctor 无法通过 admin 登录路径匹配到记录，反之亦然
func (r *UserRepo) FindByEmailAndRole(ctx context.Context, email string, role auth.Role) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email, "role": role}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLoginAt 更新最后登录时间
func (r *UserRepo) UpdateLastLoginAt(ctx context.Context, id string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"last_login_at": now,
			"updated_at":    now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// SetVerification 设置医生认证状态
// email_verified 和 profile.is_verified_doctor 一起翻转，并记录操作元数据
func (r *UserRepo) SetVerification(ctx context.Context, id string, verified bool, adminID, reason string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"email_verified":             verified,
			"profile.is_verified_doctor": verified,
			"profile.verified_at":        now,
			"profile.verified_by":        adminID,
			"profile.verify_reason":      reason,
			"updated_at":                 now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// SetSubscribed 设置newsletter订阅状态
func (r *UserRepo) SetSubscribed(ctx context.Context, id string, subscribed bool) error {
	update := bson.M{
		"$set": bson.M{
			"subscribed": subscribed,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete 删除用户
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListByRole 按角色查询用户列表（支持分页和认证状态筛选）
func (r *UserRepo) ListByRole(ctx context.Context, role auth.Role, verified *bool, page, limit int64) ([]*auth.User, int64, error) {
	filter := bson.M{"role": role}
	if verified != nil {
		filter["email_verified"] = *verified
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip((page - 1) * limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []*auth.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CountByRole 按角色统计用户数量
func (r *UserRepo) CountByRole(ctx context.Context, role auth.Role, verified *bool) (int64, error) {
	filter := bson.M{"role": role}
	if verified != nil {
		filter["email_verified"] = *verified
	}
	return r.collection.CountDocuments(ctx, filter)
}
