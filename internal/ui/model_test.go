package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNotifications(t *testing.T) {
	Convey("Notifications", t, func() {
		m := &Model{}

		Convey("NotifyFailure carries the failure text verbatim", func() {
			msg := NotifyFailure("Cannot play Song: materialization failed")()

			text, ok := msg.(string)
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "Cannot play Song: materialization failed")
		})

		Convey("Update stores a string message and schedules its clearing", func() {
			cmd := m.Update("something went wrong")
			So(cmd, ShouldNotBeNil)
			So(m.View("main"), ShouldContainSubstring, "something went wrong")

			Convey("ClearNotificationMsg resets the view", func() {
				So(m.Update(ClearNotificationMsg{}), ShouldBeNil)
				So(m.View("main"), ShouldEqual, "main")
			})
		})

		Convey("View without a notification is the untouched content", func() {
			So(m.View("plain content"), ShouldEqual, "plain content")
		})
	})
}
