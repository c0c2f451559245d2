package observer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nginx/state-observer/pkg/observer"
)

var _ = Describe("MapSubject", func() {
	var subject *observer.MapSubject[string, int]

	BeforeEach(func() {
		subject = observer.NewMapSubject[string, int](nil)
	})

	It("notifies with the whole mapping on every change", func() {
		var rec recorded[map[string]int]

		o := observer.NewMapObserver(subject, rec.callback, observer.Trigger)
		defer o.Close()
		Expect(rec.values).To(Equal([]map[string]int{{}}))

		Expect(subject.SetItem("x", 1)).To(BeTrue())
		Expect(rec.values).To(Equal([]map[string]int{{}, {"x": 1}}))

		Expect(subject.RemoveItem("x")).To(BeTrue())
		Expect(rec.values).To(Equal([]map[string]int{{}, {"x": 1}, {}}))
	})

	It("notifies SetItem only when the value changes", func() {
		var rec recorded[map[string]int]

		o := observer.NewMapObserver(subject, rec.callback, observer.Suppress)
		defer o.Close()

		Expect(subject.SetItem("x", 1)).To(BeTrue())
		Expect(subject.SetItem("x", 1)).To(BeFalse())
		Expect(subject.SetItem("x", 2)).To(BeTrue())
		Expect(subject.SetItem("y", 0)).To(BeTrue())

		Expect(rec.values).To(Equal([]map[string]int{
			{"x": 1},
			{"x": 2},
			{"x": 2, "y": 0},
		}))
	})

	It("ignores RemoveItem with an absent key", func() {
		var rec recorded[map[string]int]

		o := observer.NewMapObserver(subject, rec.callback, observer.Suppress)
		defer o.Close()

		Expect(subject.RemoveItem("missing")).To(BeFalse())
		Expect(rec.values).To(BeEmpty())
	})

	It("notifies SetIfChanged only when the mapping differs", func() {
		var rec recorded[map[string]int]

		o := observer.NewMapObserver(subject, rec.callback, observer.Suppress)
		defer o.Close()

		Expect(subject.SetIfChanged(map[string]int{})).To(BeFalse())
		Expect(subject.SetIfChanged(map[string]int{"a": 1, "b": 2})).To(BeTrue())
		Expect(subject.SetIfChanged(map[string]int{"b": 2, "a": 1})).To(BeFalse())
		subject.SetAlways(map[string]int{"b": 2, "a": 1})
		Expect(subject.Clear()).To(BeTrue())
		Expect(subject.Clear()).To(BeFalse())

		Expect(rec.values).To(HaveLen(3))
	})

	It("answers read queries", func() {
		subject.SetAlways(map[string]int{"b": 2, "a": 1, "c": 3})

		Expect(subject.Size()).To(Equal(3))
		Expect(subject.IsEmpty()).To(BeFalse())
		Expect(subject.HasKey("a")).To(BeTrue())
		Expect(subject.HasKey("z")).To(BeFalse())

		v, ok := subject.Item("b")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(2))

		_, ok = subject.Item("z")
		Expect(ok).To(BeFalse())

		Expect(subject.Keys()).To(ConsistOf("a", "b", "c"))
		Expect(observer.SortedKeys(subject)).To(Equal([]string{"a", "b", "c"}))
	})

	It("isolates the stored mapping from callers and callbacks", func() {
		items := map[string]int{"a": 1}
		subject.SetAlways(items)
		items["a"] = 100

		o := observer.NewMapObserver(subject, func(m map[string]int) {
			m["a"] = 200
		}, observer.Trigger)
		defer o.Close()

		Expect(subject.Get()).To(Equal(map[string]int{"a": 1}))
	})

	It("tracks observers of several subscriptions and closes them in any order", func() {
		o1 := observer.NewMapObserver(subject, func(map[string]int) {}, observer.Suppress)
		o2 := observer.NewMapObserver(subject, func(map[string]int) {}, observer.Suppress)
		o3 := observer.NewMapObserver(subject, func(map[string]int) {}, observer.Suppress)
		Expect(subject.ObserverCount()).To(Equal(3))

		o2.Close()
		o3.Close()
		o1.Close()
		Expect(subject.ObserverCount()).To(BeZero())
	})

	It("panics when observing a nil subject", func() {
		Expect(func() {
			observer.NewMapObserver[string, int](nil, func(map[string]int) {}, observer.Suppress)
		}).To(PanicWith(MatchError("cannot observe an invalid MapSubject")))
	})
})
