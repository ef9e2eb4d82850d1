package blog

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinkfit/internal/model"
	"blinkfit/internal/pkg/slugify"
)

// HouseAuthor 平台署名
// 使用该署名的文章属于平台，不要求关联具体作者账号
const HouseAuthor = "BlinkFit Team"

// 派生meta字段的长度规则
const (
	metaTitleMax       = 60
	metaTitleCut       = 57
	metaDescriptionMax = 160
	metaDescriptionCut = 157
	excerptMax         = 300
	tagMax             = 50
	wordsPerMinute     = 200
)

// Blog 文章实体
// ID使用UUID格式（string）；slug唯一，由标题派生
type Blog struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Title           string     `bson:"title" json:"title"`                           // 标题
	Slug            string     `bson:"slug" json:"slug"`                             // URL slug（唯一，标题派生）
	Excerpt         string     `bson:"excerpt" json:"excerpt"`                       // 摘要（≤300字符）
	Content         string     `bson:"content" json:"content,omitempty"`             // 正文（列表摘要视图中省略）
	Author          string     `bson:"author" json:"author"`                         // 作者显示名
	AuthorID        string     `bson:"author_id,omitempty" json:"author_id,omitempty"` // 作者账号ID（平台署名时为空）
	Category        Category   `bson:"category" json:"category"`                     // 分类（固定枚举）
	Tags            []string   `bson:"tags,omitempty" json:"tags,omitempty"`         // 标签（去重、去空白）
	FeaturedImage   string     `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	ReadTime        int        `bson:"read_time" json:"read_time"`                   // 预计阅读分钟数（正文派生）
	Published       bool       `bson:"published" json:"published"`                   // 是否已发布
	PublishedAt     *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	Views           int64      `bson:"views" json:"views"`                           // 浏览计数（≥0）
	Likes           int64      `bson:"likes" json:"likes"`                           // 点赞计数（≥0）
	MetaTitle       string     `bson:"meta_title" json:"meta_title"`                 // SEO标题（缺省由标题截断）
	MetaDescription string     `bson:"meta_description" json:"meta_description"`     // SEO描述（缺省由摘要截断）
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}

// Category 文章分类
type Category string

const (
	CategoryEyeHealth  Category = "eye-health"  // 眼健康
	CategoryScreenTime Category = "screen-time" // 屏幕用眼
	CategoryNutrition  Category = "nutrition"   // 营养
	CategoryExercises  Category = "exercises"   // 眼保健操
	CategoryLifestyle  Category = "lifestyle"   // 生活方式
	CategoryResearch   Category = "research"    // 研究进展
)

// Categories 所有合法分类
func Categories() []Category {
	return []Category{
		CategoryEyeHealth,
		CategoryScreenTime,
		CategoryNutrition,
		CategoryExercises,
		CategoryLifestyle,
		CategoryResearch,
	}
}

// IsValid 检查分类是否有效
func (c Category) IsValid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// String 返回分类字符串
func (c Category) String() string {
	return string(c)
}

// Normalize 持久化前的规范化处理
// 每次保存都要调用：
//   - 去掉文本字段首尾空白
//   - slug为空时由标题派生（标题变化时由调用方清空slug触发重新派生）
//   - 标签去空白、去重
//   - 浏览/点赞计数钳制为非负（静默归零，从不报错）
//   - read_time由正文词数派生
//   - meta字段未显式设置时由标题/摘要截断派生
func (b *Blog) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Excerpt = strings.TrimSpace(b.Excerpt)
	b.Content = strings.TrimSpace(b.Content)
	b.Author = strings.TrimSpace(b.Author)
	b.MetaTitle = strings.TrimSpace(b.MetaTitle)
	b.MetaDescription = strings.TrimSpace(b.MetaDescription)

	if b.Author == "" {
		b.Author = HouseAuthor
	}

	if b.Slug == "" {
		b.Slug = slugify.Make(b.Title)
	}

	b.Tags = normalizeTags(b.Tags)

	if b.Views < 0 {
		b.Views = 0
	}
	if b.Likes < 0 {
		b.Likes = 0
	}

	b.ReadTime = readTime(b.Content)

	if b.MetaTitle == "" {
		b.MetaTitle = truncateWithEllipsis(b.Title, metaTitleMax, metaTitleCut)
	}
	if b.MetaDescription == "" {
		b.MetaDescription = truncateWithEllipsis(b.Excerpt, metaDescriptionMax, metaDescriptionCut)
	}
}

// Validate 校验实体，返回字段级错误
// 先调用 Normalize 再调用 Validate
func (b *Blog) Validate() []model.FieldError {
	var errs []model.FieldError

	if b.Title == "" {
		errs = append(errs, model.FieldError{Field: "title", Message: "title is required"})
	}
	if b.Excerpt == "" {
		errs = append(errs, model.FieldError{Field: "excerpt", Message: "excerpt is required"})
	}
	if len([]rune(b.Excerpt)) > excerptMax {
		errs = append(errs, model.FieldError{Field: "excerpt", Message: "excerpt must be at most 300 characters"})
	}
	if b.Content == "" {
		errs = append(errs, model.FieldError{Field: "content", Message: "content is required"})
	}
	if b.Title != "" && b.Slug == "" {
		// 全标点之类的标题派生不出slug，直接拒绝
		errs = append(errs, model.FieldError{Field: "title", Message: "title must contain at least one alphanumeric character"})
	}
	if !b.Category.IsValid() {
		errs = append(errs, model.FieldError{Field: "category", Message: "invalid category"})
	}
	if b.Author != HouseAuthor && b.AuthorID == "" {
		errs = append(errs, model.FieldError{Field: "author_id", Message: "author_id is required unless the article is authored by " + HouseAuthor})
	}
	for _, tag := range b.Tags {
		if len([]rune(tag)) > tagMax {
			errs = append(errs, model.FieldError{Field: "tags", Message: "tags must be at most 50 characters each"})
			break
		}
	}

	return errs
}

// MarkPublished 设置发布状态并维护发布时间
// published_at 只在首次发布时设置，下线再发布不重置
func (b *Blog) MarkPublished(published bool) {
	b.Published = published
	if published && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// readTime 按每分钟200词估算阅读时长，至少1分钟
func readTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// truncateWithEllipsis 超过max时截断到cut并追加省略号
func truncateWithEllipsis(s string, max, cut int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:cut]) + "..."
}

// Collection 返回集合名称
func (b *Blog) Collection() string { return "blogs" }

// EnsureIndexes 创建和维护索引
func (b *Blog) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(b.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "published", Value: 1}, {Key: "published_at", Value: -1}},
			Options: options.Index().SetName("idx_published_at"),
		},
		{
			Keys:    bson.D{{Key: "published", Value: 1}, {Key: "views", Value: -1}, {Key: "published_at", Value: -1}},
			Options: options.Index().SetName("idx_popular"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_author_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
