package slugify

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMake(t *testing.T) {
	Convey("Make 从标题生成URL安全的slug", t, func() {
		Convey("普通英文标题", func() {
			So(Make("10 Tips for Healthy Eyes"), ShouldEqual, "10-tips-for-healthy-eyes")
		})

		Convey("大小写归一为小写", func() {
			So(Make("Screen Time AND Your Eyes"), ShouldEqual, "screen-time-and-your-eyes")
		})

		Convey("标点被剥除", func() {
			So(Make("What's the 20-20-20 rule?"), ShouldEqual, "whats-the-20-20-20-rule")
		})

		Convey("多余空白折叠为单个连字符", func() {
			So(Make("  eye   health \t tips  "), ShouldEqual, "eye-health-tips")
		})

		Convey("连续连字符折叠", func() {
			So(Make("a -- b --- c"), ShouldEqual, "a-b-c")
		})

		Convey("首尾连字符被去掉", func() {
			So(Make("- leading and trailing -"), ShouldEqual, "leading-and-trailing")
		})

		Convey("全标点的标题得到空字符串", func() {
			So(Make("???"), ShouldEqual, "")
			So(Make("!!! ... ???"), ShouldEqual, "")
		})

		Convey("同一输入永远产出同一结果", func() {
			first := Make("Blue Light: Myth vs. Fact")
			So(Make("Blue Light: Myth vs. Fact"), ShouldEqual, first)
			So(first, ShouldEqual, "blue-light-myth-vs-fact")
		})
	})
}

func TestIsValid(t *testing.T) {
	Convey("IsValid 检查合法slug", t, func() {
		So(IsValid("eye-health-tips"), ShouldBeTrue)
		So(IsValid("20-20-20"), ShouldBeTrue)

		So(IsValid(""), ShouldBeFalse)
		So(IsValid("Has Upper"), ShouldBeFalse)
		So(IsValid("double--hyphen"), ShouldBeFalse)
		So(IsValid("-leading"), ShouldBeFalse)
	})
}
