package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/model/blog"
	"blinkfit/internal/model/contact"
)

// EnsureIndexes 创建所有模型的索引
// 应用启动时调用一次，所有模型都实现了 Model 接口
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&auth.User{},
		&auth.RefreshToken{},
		&blog.Blog{},
		&contact.Contact{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
