package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"blinkfit/internal/model/auth"
)

func TestNewsletterSubscribe(t *testing.T) {
	Convey("NewsletterService.Subscribe", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		svc := NewNewsletterService(userRepo, disabledMailer())

		Convey("新邮箱创建无密码的user账号", func() {
			So(svc.Subscribe(ctx, " New@Example.COM ", "New Reader"), ShouldBeNil)

			u, err := userRepo.FindByEmail(ctx, "new@example.com")
			So(err, ShouldBeNil)
			So(u.Role, ShouldEqual, auth.RoleUser)
			So(u.Subscribed, ShouldBeTrue)
			So(u.IsNewsletterOnly(), ShouldBeTrue)
		})

		Convey("姓名缺省为邮箱", func() {
			So(svc.Subscribe(ctx, "anon@example.com", ""), ShouldBeNil)

			u, _ := userRepo.FindByEmail(ctx, "anon@example.com")
			So(u.Name, ShouldEqual, "anon@example.com")
		})

		Convey("已注册账号只打开订阅标志", func() {
			doctor := seedDoctor(userRepo, true)
			So(doctor.Subscribed, ShouldBeFalse)

			So(svc.Subscribe(ctx, "doc@example.com", ""), ShouldBeNil)

			u, _ := userRepo.FindByID(ctx, doctor.ID)
			So(u.Subscribed, ShouldBeTrue)
			So(u.Role, ShouldEqual, auth.RoleDoctor)
			So(u.Password, ShouldNotBeEmpty)
		})

		Convey("重复订阅幂等成功", func() {
			So(svc.Subscribe(ctx, "new@example.com", ""), ShouldBeNil)
			So(svc.Subscribe(ctx, "new@example.com", ""), ShouldBeNil)
		})
	})
}

func TestNewsletterUnsubscribe(t *testing.T) {
	Convey("NewsletterService.Unsubscribe", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		svc := NewNewsletterService(userRepo, disabledMailer())

		So(svc.Subscribe(ctx, "reader@example.com", ""), ShouldBeNil)

		Convey("退订后标志关闭", func() {
			So(svc.Unsubscribe(ctx, "reader@example.com"), ShouldBeNil)

			u, _ := userRepo.FindByEmail(ctx, "reader@example.com")
			So(u.Subscribed, ShouldBeFalse)
		})

		Convey("未知邮箱也返回成功", func() {
			So(svc.Unsubscribe(ctx, "ghost@example.com"), ShouldBeNil)
		})
	})
}
