package contact

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinkfit/internal/model/contact"
)

// ContactRepository 联系表单仓库接口（供 service 层依赖）
type ContactRepository interface {
	Create(ctx context.Context, c *contact.Contact) error
	FindByID(ctx context.Context, id string) (*contact.Contact, error)
	UpdateStatus(ctx context.Context, c *contact.Contact) error
	List(ctx context.Context, status *contact.Status, page, limit int64) ([]*contact.Contact, int64, error)
	CountByStatus(ctx context.Context, status contact.Status) (int64, error)
}

// ContactRepo 联系表单仓库
type ContactRepo struct {
	collection *mongo.Collection
}

var _ ContactRepository = (*ContactRepo)(nil)

// NewContactRepo 创建联系表单仓库
func NewContactRepo(db *mongo.Database) *ContactRepo {
	var c contact.Contact
	return &ContactRepo{
		collection: db.Collection(c.Collection()),
	}
}

// Create 创建提交记录
func (r *ContactRepo) Create(ctx context.Context, c *contact.Contact) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, c)
	return err
}

// FindByID 根据ID查询
func (r *ContactRepo) FindByID(ctx context.Context, id string) (*contact.Contact, error) {
	var c contact.Contact
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus 更新处理状态和回复元数据
func (r *ContactRepo) UpdateStatus(ctx context.Context, c *contact.Contact) error {
	update := bson.M{
		"$set": bson.M{
			"status":     c.Status,
			"priority":   c.Priority,
			"replied_at": c.RepliedAt,
			"replied_by": c.RepliedBy,
			"reply_note": c.ReplyNote,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	return err
}

// List 查询提交列表（状态筛选 + 分页，按创建时间倒序）
func (r *ContactRepo) List(ctx context.Context, status *contact.Status, page, limit int64) ([]*contact.Contact, int64, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
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

	var contacts []*contact.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// CountByStatus 按状态统计提交数量
func (r *ContactRepo) CountByStatus(ctx context.Context, status contact.Status) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}
