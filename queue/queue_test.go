package queue

import (
	"testing"

	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	Convey("Queue", t, func() {
		q := New()

		a := &source.Track{ID: "a", Title: "First"}
		b := &source.Track{ID: "b", Title: "Second"}
		c := &source.Track{ID: "c", Title: "Third"}

		Convey("Next on empty returns none", func() {
			So(q.Next().IsAbsent(), ShouldBeTrue)
		})

		Convey("FIFO ordering", func() {
			q.Enqueue(a)
			q.Enqueue(b)
			q.Enqueue(c)

			So(q.Len(), ShouldEqual, 3)

			first, _ := q.Next().Get()
			So(first.ID, ShouldEqual, "a")

			second, _ := q.Next().Get()
			So(second.ID, ShouldEqual, "b")

			So(q.Len(), ShouldEqual, 1)
		})

		Convey("Peek does not consume", func() {
			q.Enqueue(a)

			head, _ := q.Peek().Get()
			So(head.ID, ShouldEqual, "a")
			So(q.Len(), ShouldEqual, 1)
		})

		Convey("Remove drops by id", func() {
			q.Enqueue(a)
			q.Enqueue(b)

			q.Remove("a")

			So(q.Len(), ShouldEqual, 1)
			head, _ := q.Peek().Get()
			So(head.ID, ShouldEqual, "b")

			Convey("Unknown ids are ignored", func() {
				q.Remove("zzz")
				So(q.Len(), ShouldEqual, 1)
			})
		})

		Convey("Clear empties everything", func() {
			q.Enqueue(a)
			q.Enqueue(b)
			q.Clear()

			So(q.Len(), ShouldEqual, 0)
			So(q.Items(), ShouldBeEmpty)
		})

		Convey("Items is a snapshot", func() {
			q.Enqueue(a)

			items := q.Items()
			items[0] = c

			head, _ := q.Peek().Get()
			So(head.ID, ShouldEqual, "a")
		})
	})
}
