package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewPagination(t *testing.T) {
	Convey("NewPagination 计算分页元信息", t, func() {
		Convey("整除", func() {
			p := NewPagination(1, 10, 30)
			So(p.TotalPages, ShouldEqual, 3)
			So(p.HasNext, ShouldBeTrue)
			So(p.HasPrev, ShouldBeFalse)
		})

		Convey("非整除向上取整", func() {
			p := NewPagination(1, 10, 31)
			So(p.TotalPages, ShouldEqual, 4)
		})

		Convey("最后一页没有下一页", func() {
			p := NewPagination(3, 10, 30)
			So(p.HasNext, ShouldBeFalse)
			So(p.HasPrev, ShouldBeTrue)
		})

		Convey("空结果集", func() {
			p := NewPagination(1, 10, 0)
			So(p.TotalPages, ShouldEqual, 0)
			So(p.HasNext, ShouldBeFalse)
			So(p.HasPrev, ShouldBeFalse)
		})

		Convey("非法页码钳制到1", func() {
			p := NewPagination(0, 10, 30)
			So(p.Page, ShouldEqual, 1)
		})
	})
}
