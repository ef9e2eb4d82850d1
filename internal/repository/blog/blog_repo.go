package blog

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinkfit/internal/model/blog"
)

// 列表排序方式
const (
	SortLatest  = "latest"  // 发布时间倒序
	SortPopular = "popular" // 浏览量倒序，发布时间倒序打破平局
	SortOldest  = "oldest"  // 发布时间正序
)

// ListOptions 列表查询条件
type ListOptions struct {
	PublishedOnly bool   // 只返回已发布（公开访问）
	Category      string // 分类筛选（可选）
	Search        string // 关键词，匹配标题/摘要/正文（可选）
	AuthorID      string // 按作者筛选（可选）
	Sort          string // latest / popular / oldest
	Page          int64
	Limit         int64
}

// BlogRepository 文章仓库接口（供 service 层依赖）
type BlogRepository interface {
	Create(ctx context.Context, b *blog.Blog) error
	FindByID(ctx context.Context, id string) (*blog.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*blog.Blog, error)
	Replace(ctx context.Context, b *blog.Blog) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]*blog.Blog, int64, error)
	IncViews(ctx context.Context, id string) error
	IncLikes(ctx context.Context, id string) error
	Count(ctx context.Context, publishedOnly bool) (int64, error)
	TotalViews(ctx context.Context) (int64, error)
}

// BlogRepo 文章仓库
type BlogRepo struct {
	collection *mongo.Collection
}

var _ BlogRepository = (*BlogRepo)(nil)

// NewBlogRepo 创建文章仓库
func NewBlogRepo(db *mongo.Database) *BlogRepo {
	var b blog.Blog
	return &BlogRepo{
		collection: db.Collection(b.Collection()),
	}
}

// Create 创建文章
func (r *BlogRepo) Create(ctx context.Context, b *blog.Blog) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, b)
	return err
}

// FindByID 根据ID查询
func (r *BlogRepo) FindByID(ctx context.Context, id string) (*blog.Blog, error) {
	var b blog.Blog
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindBySlug 根据slug查询
func (r *BlogRepo) FindBySlug(ctx context.Context, slug string) (*blog.Blog, error) {
	var b blog.Blog
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Replace 整体替换文章文档
// service 层先取出、合并、规范化校验后整体写回，单文档替换是原子的
func (r *BlogRepo) Replace(ctx context.Context, b *blog.Blog) error {
	b.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	return err
}

// Delete 删除文章（硬删除，无墓碑）
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List 查询文章列表（筛选 + 排序 + 分页）
func (r *BlogRepo) List(ctx context.Context, listOpts ListOptions) ([]*blog.Blog, int64, error) {
	filter := bson.M{}
	if listOpts.PublishedOnly {
		filter["published"] = true
	}
	if listOpts.Category != "" {
		filter["category"] = listOpts.Category
	}
	if listOpts.AuthorID != "" {
		filter["author_id"] = listOpts.AuthorID
	}
	if listOpts.Search != "" {
		// 大小写不敏感的子串匹配，相关性排序交给数据库
		pattern := regexp.QuoteMeta(listOpts.Search)
		regex := bson.M{"$regex": pattern, "$options": "i"}
		filter["$or"] = []bson.M{
			{"title": regex},
			{"excerpt": regex},
			{"content": regex},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var sort bson.D
	switch listOpts.Sort {
	case SortPopular:
		sort = bson.D{{Key: "views", Value: -1}, {Key: "published_at", Value: -1}}
	case SortOldest:
		sort = bson.D{{Key: "published_at", Value: 1}}
	default:
		sort = bson.D{{Key: "published_at", Value: -1}}
	}

	page := listOpts.Page
	if page < 1 {
		page = 1
	}

	// 列表是摘要视图，正文不随列表返回
	findOpts := options.Find().
		SetSort(sort).
		SetLimit(listOpts.Limit).
		SetSkip((page - 1) * listOpts.Limit).
		SetProjection(bson.M{"content": 0})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var blogs []*blog.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// IncViews 浏览计数+1
// 调用方按尽力而为处理：失败不影响读取请求
func (r *BlogRepo) IncViews(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// IncLikes 点赞计数+1
func (r *BlogRepo) IncLikes(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	return err
}

// Count 统计文章数量
func (r *BlogRepo) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	return r.collection.CountDocuments(ctx, filter)
}

// TotalViews 聚合统计全站浏览总量
func (r *BlogRepo) TotalViews(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"views": bson.M{"$sum": "$views"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Views int64 `bson:"views"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Views, nil
}
