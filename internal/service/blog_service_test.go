package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/model/blog"
	blogRepo "blinkfit/internal/repository/blog"
)

// fakeBlogRepo 进程内 BlogRepository 实现
type fakeBlogRepo struct {
	blogs map[string]*blog.Blog // id -> blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*blog.Blog)}
}

func (r *fakeBlogRepo) Create(_ context.Context, b *blog.Blog) error {
	for _, existing := range r.blogs {
		if existing.Slug == b.Slug {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) FindByID(_ context.Context, id string) (*blog.Blog, error) {
	if b, ok := r.blogs[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBlogRepo) FindBySlug(_ context.Context, slug string) (*blog.Blog, error) {
	for _, b := range r.blogs {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBlogRepo) Replace(_ context.Context, b *blog.Blog) error {
	if _, ok := r.blogs[b.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id string) error {
	delete(r.blogs, id)
	return nil
}

func (r *fakeBlogRepo) List(_ context.Context, opts blogRepo.ListOptions) ([]*blog.Blog, int64, error) {
	var out []*blog.Blog
	for _, b := range r.blogs {
		if opts.PublishedOnly && !b.Published {
			continue
		}
		if opts.Category != "" && string(b.Category) != opts.Category {
			continue
		}
		if opts.AuthorID != "" && b.AuthorID != opts.AuthorID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	switch opts.Sort {
	case blogRepo.SortPopular:
		sort.Slice(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	return out, int64(len(out)), nil
}

func (r *fakeBlogRepo) IncViews(_ context.Context, id string) error {
	if b, ok := r.blogs[id]; ok {
		b.Views++
		return nil
	}
	return mongo.ErrNoDocuments
}

func (r *fakeBlogRepo) IncLikes(_ context.Context, id string) error {
	if b, ok := r.blogs[id]; ok {
		b.Likes++
		return nil
	}
	return mongo.ErrNoDocuments
}

func (r *fakeBlogRepo) Count(_ context.Context, publishedOnly bool) (int64, error) {
	var n int64
	for _, b := range r.blogs {
		if publishedOnly && !b.Published {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeBlogRepo) TotalViews(_ context.Context) (int64, error) {
	var n int64
	for _, b := range r.blogs {
		n += b.Views
	}
	return n, nil
}

var (
	testAdmin  = &auth.User{ID: "admin-1", Name: "BlinkFit Admin", Role: auth.RoleAdmin}
	testDoctor = &auth.User{ID: "doc-1", Name: "Dr. Smith", Role: auth.RoleDoctor}
)

func validCreateInput() CreateBlogInput {
	return CreateBlogInput{
		Title:    "10 Tips for Healthy Eyes",
		Excerpt:  "Simple habits that protect your vision.",
		Content:  "Blink often. Take breaks. Eat well.",
		Category: "eye-health",
	}
}

func TestBlogCreate(t *testing.T) {
	Convey("BlogService.Create", t, func() {
		ctx := context.Background()
		repo := newFakeBlogRepo()
		svc := NewBlogService(repo, nil)

		Convey("医生创建的文章归属本人，默认直接发布", func() {
			b, err := svc.Create(ctx, testDoctor, validCreateInput())
			So(err, ShouldBeNil)
			So(b.AuthorID, ShouldEqual, "doc-1")
			So(b.Author, ShouldEqual, "Dr. Smith")
			So(b.Published, ShouldBeTrue)
			So(b.PublishedAt, ShouldNotBeNil)
			So(b.Slug, ShouldEqual, "10-tips-for-healthy-eyes")
			So(b.ReadTime, ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("显式创建草稿", func() {
			in := validCreateInput()
			draft := false
			in.Published = &draft

			b, err := svc.Create(ctx, testDoctor, in)
			So(err, ShouldBeNil)
			So(b.Published, ShouldBeFalse)
			So(b.PublishedAt, ShouldBeNil)
		})

		Convey("管理员以平台署名发文，不关联作者账号", func() {
			in := validCreateInput()
			in.Author = blog.HouseAuthor

			b, err := svc.Create(ctx, testAdmin, in)
			So(err, ShouldBeNil)
			So(b.Author, ShouldEqual, blog.HouseAuthor)
			So(b.AuthorID, ShouldBeEmpty)
		})

		Convey("医生不能冒用平台署名", func() {
			in := validCreateInput()
			in.Author = blog.HouseAuthor

			b, err := svc.Create(ctx, testDoctor, in)
			So(err, ShouldBeNil)
			So(b.Author, ShouldEqual, "Dr. Smith")
			So(b.AuthorID, ShouldEqual, "doc-1")
		})

		Convey("全标点标题校验失败", func() {
			in := validCreateInput()
			in.Title = "???"

			_, err := svc.Create(ctx, testDoctor, in)
			var verr *ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
		})

		Convey("slug冲突返回ErrSlugTaken", func() {
			_, err := svc.Create(ctx, testDoctor, validCreateInput())
			So(err, ShouldBeNil)

			_, err = svc.Create(ctx, testDoctor, validCreateInput())
			So(err, ShouldEqual, ErrSlugTaken)
		})
	})
}

func TestBlogUpdate(t *testing.T) {
	Convey("BlogService.Update", t, func() {
		ctx := context.Background()
		repo := newFakeBlogRepo()
		svc := NewBlogService(repo, nil)

		created, err := svc.Create(ctx, testDoctor, validCreateInput())
		So(err, ShouldBeNil)

		Convey("标题变化重新派生slug和meta标题", func() {
			title := "Blue Light and Your Eyes"
			b, err := svc.Update(ctx, testDoctor, created.ID, UpdateBlogInput{Title: &title})
			So(err, ShouldBeNil)
			So(b.Slug, ShouldEqual, "blue-light-and-your-eyes")
			So(b.MetaTitle, ShouldEqual, title)
		})

		Convey("显式meta覆盖不被重新派生", func() {
			title := "Blue Light and Your Eyes"
			meta := "Custom SEO"
			b, err := svc.Update(ctx, testDoctor, created.ID, UpdateBlogInput{Title: &title, MetaTitle: &meta})
			So(err, ShouldBeNil)
			So(b.MetaTitle, ShouldEqual, "Custom SEO")
		})

		Convey("其他医生不能更新别人的文章", func() {
			other := &auth.User{ID: "doc-2", Role: auth.RoleDoctor}
			title := "Hijacked"
			_, err := svc.Update(ctx, other, created.ID, UpdateBlogInput{Title: &title})
			So(err, ShouldEqual, ErrForbidden)
		})

		Convey("管理员可以更新任意文章", func() {
			title := "Edited by Admin"
			b, err := svc.Update(ctx, testAdmin, created.ID, UpdateBlogInput{Title: &title})
			So(err, ShouldBeNil)
			So(b.Title, ShouldEqual, "Edited by Admin")
		})

		Convey("不存在的文章返回ErrNotFound", func() {
			title := "x"
			_, err := svc.Update(ctx, testDoctor, "ghost", UpdateBlogInput{Title: &title})
			So(err, ShouldEqual, ErrNotFound)
		})
	})
}

func TestBlogPublishAndDelete(t *testing.T) {
	Convey("BlogService 发布和删除", t, func() {
		ctx := context.Background()
		repo := newFakeBlogRepo()
		svc := NewBlogService(repo, nil)

		created, err := svc.Create(ctx, testDoctor, validCreateInput())
		So(err, ShouldBeNil)

		Convey("下线后公开读取404", func() {
			_, err := svc.SetPublished(ctx, testDoctor, created.ID, false)
			So(err, ShouldBeNil)

			_, err = svc.GetBySlug(ctx, created.Slug, true)
			So(err, ShouldEqual, ErrNotFound)

			Convey("管理端仍能读取", func() {
				b, err := svc.GetBySlug(ctx, created.Slug, false)
				So(err, ShouldBeNil)
				So(b.Published, ShouldBeFalse)
			})
		})

		Convey("其他医生不能删除别人的文章", func() {
			other := &auth.User{ID: "doc-2", Role: auth.RoleDoctor}
			So(svc.Delete(ctx, other, created.ID), ShouldEqual, ErrForbidden)
		})

		Convey("作者删除后文章不存在", func() {
			So(svc.Delete(ctx, testDoctor, created.ID), ShouldBeNil)

			_, err := svc.GetBySlug(ctx, created.Slug, true)
			So(err, ShouldEqual, ErrNotFound)
		})
	})
}

func TestBlogGetBySlug(t *testing.T) {
	Convey("BlogService.GetBySlug", t, func() {
		ctx := context.Background()
		repo := newFakeBlogRepo()
		svc := NewBlogService(repo, nil)

		created, err := svc.Create(ctx, testDoctor, validCreateInput())
		So(err, ShouldBeNil)

		Convey("公开读取累加浏览计数", func() {
			_, err := svc.GetBySlug(ctx, created.Slug, true)
			So(err, ShouldBeNil)

			_, err = svc.GetBySlug(ctx, created.Slug, true)
			So(err, ShouldBeNil)

			stored, _ := repo.FindByID(ctx, created.ID)
			So(stored.Views, ShouldEqual, 2)
		})

		Convey("管理端读取不累加计数", func() {
			_, err := svc.GetBySlug(ctx, created.Slug, false)
			So(err, ShouldBeNil)

			stored, _ := repo.FindByID(ctx, created.ID)
			So(stored.Views, ShouldEqual, 0)
		})

		Convey("未知slug返回ErrNotFound", func() {
			_, err := svc.GetBySlug(ctx, "ghost", true)
			So(err, ShouldEqual, ErrNotFound)
		})
	})
}

func TestBlogList(t *testing.T) {
	Convey("BlogService.List", t, func() {
		ctx := context.Background()
		repo := newFakeBlogRepo()
		svc := NewBlogService(repo, nil)

		for _, title := range []string{"Article One", "Article Two", "Article Three"} {
			in := validCreateInput()
			in.Title = title
			_, err := svc.Create(ctx, testDoctor, in)
			So(err, ShouldBeNil)
		}
		draft := false
		in := validCreateInput()
		in.Title = "Hidden Draft"
		in.Published = &draft
		_, err := svc.Create(ctx, testDoctor, in)
		So(err, ShouldBeNil)

		Convey("公开列表只包含已发布文章", func() {
			blogs, pagination, err := svc.List(ctx, ListInput{PublishedOnly: true})
			So(err, ShouldBeNil)
			So(len(blogs), ShouldEqual, 3)
			So(pagination.Total, ShouldEqual, 3)
		})

		Convey("管理视图包含草稿", func() {
			blogs, _, err := svc.List(ctx, ListInput{})
			So(err, ShouldBeNil)
			So(len(blogs), ShouldEqual, 4)
		})

		Convey("列表是摘要视图，不携带正文", func() {
			blogs, _, err := svc.List(ctx, ListInput{PublishedOnly: true})
			So(err, ShouldBeNil)
			So(len(blogs), ShouldBeGreaterThan, 0)

			for _, b := range blogs {
				So(b.Content, ShouldBeEmpty)
			}

			// 序列化后也不应出现content字段
			data, err := json.Marshal(blogs[0])
			So(err, ShouldBeNil)
			So(strings.Contains(string(data), `"content"`), ShouldBeFalse)

			// 详情读取仍返回完整正文
			full, err := svc.GetBySlug(ctx, blogs[0].Slug, false)
			So(err, ShouldBeNil)
			So(full.Content, ShouldNotBeEmpty)
		})

		Convey("limit钳制到50", func() {
			_, pagination, err := svc.List(ctx, ListInput{Limit: 500})
			So(err, ShouldBeNil)
			So(pagination.Limit, ShouldEqual, 50)
		})

		Convey("limit缺省为10", func() {
			_, pagination, err := svc.List(ctx, ListInput{})
			So(err, ShouldBeNil)
			So(pagination.Limit, ShouldEqual, 10)
		})
	})
}

func TestBlogLikeAndStats(t *testing.T) {
	Convey("BlogService 点赞和统计", t, func() {
		ctx := context.Background()
		repo := newFakeBlogRepo()
		svc := NewBlogService(repo, nil)

		created, err := svc.Create(ctx, testDoctor, validCreateInput())
		So(err, ShouldBeNil)

		Convey("点赞累加计数", func() {
			b, err := svc.Like(ctx, created.Slug)
			So(err, ShouldBeNil)
			So(b.Likes, ShouldEqual, 1)
		})

		Convey("草稿不能点赞", func() {
			_, err := svc.SetPublished(ctx, testDoctor, created.ID, false)
			So(err, ShouldBeNil)

			_, err = svc.Like(ctx, created.Slug)
			So(err, ShouldEqual, ErrNotFound)
		})

		Convey("Stats统计文章数和总浏览量", func() {
			_, _ = svc.GetBySlug(ctx, created.Slug, true)

			stats, err := svc.Stats(ctx)
			So(err, ShouldBeNil)
			So(stats.TotalArticles, ShouldEqual, 1)
			So(stats.PublishedArticles, ShouldEqual, 1)
			So(stats.TotalViews, ShouldEqual, 1)
		})
	})
}
