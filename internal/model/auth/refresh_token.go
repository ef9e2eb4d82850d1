package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RefreshToken 刷新Token实体
// ID和UserID使用UUID格式（string），避免ObjectID转换的麻烦
type RefreshToken struct {
	ID        string    `bson:"_id,omitempty" json:"id"`      // UUID格式的ID
	UserID    string    `bson:"user_id" json:"user_id"`       // UUID格式的用户ID
	Token     string    `bson:"token" json:"token"`           // Refresh Token值
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // 过期时间
	CreatedAt time.Time `bson:"created_at" json:"created_at"` // 创建时间
}

// IsExpired 检查Token是否已过期
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Collection 返回集合名称
func (rt *RefreshToken) Collection() string { return "refresh_tokens" }

// EnsureIndexes 创建和维护索引
func (rt *RefreshToken) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(rt.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_user_id"),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_expires_at").SetExpireAfterSeconds(0), // TTL索引，自动删除过期token
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
