package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/model"
	"blinkfit/internal/model/auth"
	"blinkfit/internal/model/blog"
	"blinkfit/internal/pkg/cache"
	"blinkfit/internal/pkg/id"
	"blinkfit/internal/policy"
	blogRepo "blinkfit/internal/repository/blog"
)

var (
	ErrSlugTaken = errors.New("an article with this slug already exists")
)

// 列表分页上限
const (
	defaultPageSize int64 = 10
	maxPageSize     int64 = 50
)

// BlogService 文章服务
// cache 可以为 nil（Redis未配置时），所有缓存操作都是尽力而为
type BlogService struct {
	repo  blogRepo.BlogRepository
	cache *cache.RedisCache
}

// NewBlogService 创建文章服务
func NewBlogService(repo blogRepo.BlogRepository, redisCache *cache.RedisCache) *BlogService {
	return &BlogService{
		repo:  repo,
		cache: redisCache,
	}
}

// CreateBlogInput 创建文章参数
type CreateBlogInput struct {
	Title           string
	Excerpt         string
	Content         string
	Author          string // 仅管理员可指定；为空时取操作者显示名
	Category        string
	Tags            []string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	Published       *bool // 缺省为已发布
}

// Create 创建文章
// 归属规则：作者即操作者本人，除非管理员以平台署名（HouseAuthor）发文，
// 平台署名的文章不关联具体作者账号
func (s *BlogService) Create(ctx context.Context, actor *auth.User, in CreateBlogInput) (*blog.Blog, error) {
	b := &blog.Blog{
		ID:              id.New(),
		Title:           in.Title,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		Category:        blog.Category(in.Category),
		Tags:            in.Tags,
		FeaturedImage:   in.FeaturedImage,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}

	author := strings.TrimSpace(in.Author)
	if actor.Role == auth.RoleAdmin && author == blog.HouseAuthor {
		b.Author = blog.HouseAuthor
	} else {
		if actor.Role == auth.RoleAdmin && author != "" {
			b.Author = author
		} else {
			b.Author = actor.Name
		}
		b.AuthorID = actor.ID
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}
	b.MarkPublished(published)

	b.Normalize()
	if fields := b.Validate(); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	// slug 唯一
	if existing, _ := s.repo.FindBySlug(ctx, b.Slug); existing != nil {
		return nil, ErrSlugTaken
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugTaken
		}
		log.Error().Err(err).Msg("failed to create blog")
		return nil, err
	}

	return b, nil
}

// UpdateBlogInput 更新文章参数
// nil 表示该字段不在这次patch里
type UpdateBlogInput struct {
	Title           *string
	Excerpt         *string
	Content         *string
	Category        *string
	Tags            *[]string
	FeaturedImage   *string
	MetaTitle       *string
	MetaDescription *string
}

// Update 更新文章
// slug 只在标题变化时重新派生；meta字段只在这次patch未显式覆盖时重新派生
func (s *BlogService) Update(ctx context.Context, actor *auth.User, blogID string, in UpdateBlogInput) (*blog.Blog, error) {
	b, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !policy.CanManage(actor, b) {
		return nil, ErrForbidden
	}

	oldSlug := b.Slug

	if in.Title != nil && strings.TrimSpace(*in.Title) != b.Title {
		b.Title = *in.Title
		b.Slug = "" // 标题变化，slug重新派生
		if in.MetaTitle == nil {
			b.MetaTitle = "" // 未显式覆盖，重新派生
		}
	}
	if in.Excerpt != nil && strings.TrimSpace(*in.Excerpt) != b.Excerpt {
		b.Excerpt = *in.Excerpt
		if in.MetaDescription == nil {
			b.MetaDescription = ""
		}
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.Category != nil {
		b.Category = blog.Category(*in.Category)
	}
	if in.Tags != nil {
		b.Tags = *in.Tags
	}
	if in.FeaturedImage != nil {
		b.FeaturedImage = *in.FeaturedImage
	}
	if in.MetaTitle != nil {
		b.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		b.MetaDescription = *in.MetaDescription
	}

	b.Normalize()
	if fields := b.Validate(); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	// slug 变化时检查新slug未被占用
	if b.Slug != oldSlug {
		if existing, _ := s.repo.FindBySlug(ctx, b.Slug); existing != nil && existing.ID != b.ID {
			return nil, ErrSlugTaken
		}
	}

	if err := s.repo.Replace(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugTaken
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to update blog")
		return nil, err
	}

	s.invalidateCache(ctx, oldSlug, b.Slug)

	return b, nil
}

// SetPublished 发布/下线文章
// 发布立即生效：医生对自己的文章设置发布标志没有管理员预审环节
func (s *BlogService) SetPublished(ctx context.Context, actor *auth.User, blogID string, published bool) (*blog.Blog, error) {
	b, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !policy.CanManage(actor, b) {
		return nil, ErrForbidden
	}

	b.MarkPublished(published)
	b.Normalize()

	if err := s.repo.Replace(ctx, b); err != nil {
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to change publish state")
		return nil, err
	}

	s.invalidateCache(ctx, b.Slug)

	return b, nil
}

// Delete 删除文章（硬删除）
func (s *BlogService) Delete(ctx context.Context, actor *auth.User, blogID string) error {
	b, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return ErrNotFound
	}

	if !policy.CanManage(actor, b) {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, blogID); err != nil {
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to delete blog")
		return err
	}

	s.invalidateCache(ctx, b.Slug)

	return nil
}

// GetBySlug 根据slug获取文章
// public=true 时只返回已发布的文章，并尽力而为地累加浏览计数：
// 计数失败只记日志，读取照常返回
func (s *BlogService) GetBySlug(ctx context.Context, slug string, public bool) (*blog.Blog, error) {
	if public && s.cache != nil {
		var cached blog.Blog
		if err := s.cache.Get(ctx, cache.BlogCacheKey(slug), &cached); err == nil {
			// 缓存命中也要计数；缓存里的views在TTL内会略微滞后，属于软指标可接受
			if err := s.repo.IncViews(ctx, cached.ID); err != nil {
				log.Warn().Err(err).Str("slug", slug).Msg("failed to increment view counter")
			}
			return &cached, nil
		}
	}

	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, ErrNotFound
	}

	if public {
		if !b.Published {
			return nil, ErrNotFound
		}

		if err := s.repo.IncViews(ctx, b.ID); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("failed to increment view counter")
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, cache.BlogCacheKey(slug), b, cache.BlogCacheTTL); err != nil {
				log.Warn().Err(err).Str("slug", slug).Msg("failed to cache blog")
			}
		}
	}

	return b, nil
}

// ListInput 列表查询参数
type ListInput struct {
	PublishedOnly bool
	Category      string
	Search        string
	AuthorID      string
	Sort          string
	Page          int64
	Limit         int64
}

// List 查询文章列表
func (s *BlogService) List(ctx context.Context, in ListInput) ([]*blog.Blog, model.Pagination, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultPageSize
	}
	if in.Limit > maxPageSize {
		in.Limit = maxPageSize
	}

	blogs, total, err := s.repo.List(ctx, blogRepo.ListOptions{
		PublishedOnly: in.PublishedOnly,
		Category:      in.Category,
		Search:        in.Search,
		AuthorID:      in.AuthorID,
		Sort:          in.Sort,
		Page:          in.Page,
		Limit:         in.Limit,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list blogs")
		return nil, model.Pagination{}, err
	}

	// 摘要契约与存储层实现无关，这里兜底清空正文
	for _, b := range blogs {
		b.Content = ""
	}

	return blogs, model.NewPagination(in.Page, in.Limit, total), nil
}

// Like 给已发布文章点赞
func (s *BlogService) Like(ctx context.Context, slug string) (*blog.Blog, error) {
	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil || !b.Published {
		return nil, ErrNotFound
	}

	if err := s.repo.IncLikes(ctx, b.ID); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to increment like counter")
		return nil, err
	}
	b.Likes++

	s.invalidateCache(ctx, slug)

	return b, nil
}

// BlogStats 文章统计
type BlogStats struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	TotalViews        int64 `json:"total_views"`
}

// Stats 聚合统计（管理员仪表盘）
func (s *BlogService) Stats(ctx context.Context) (*BlogStats, error) {
	total, err := s.repo.Count(ctx, false)
	if err != nil {
		return nil, err
	}
	published, err := s.repo.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	views, err := s.repo.TotalViews(ctx)
	if err != nil {
		return nil, err
	}

	return &BlogStats{
		TotalArticles:     total,
		PublishedArticles: published,
		TotalViews:        views,
	}, nil
}

// invalidateCache 清理slug对应的缓存（尽力而为）
func (s *BlogService) invalidateCache(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, cache.BlogCacheKey(slug))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate blog cache")
	}
}
