package observer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nginx/state-observer/pkg/observer"
)

var _ = Describe("ListSubject", func() {
	var (
		subject *observer.ListSubject[string]
		o       *observer.ListObserver[string]
		rec     recorded[[]string]
	)

	BeforeEach(func() {
		rec = recorded[[]string]{}
		subject = observer.NewListSubject[string](nil)
		o = observer.NewListObserver(subject, rec.callback, observer.Suppress)
	})

	AfterEach(func() {
		o.Close()
		Expect(subject.ObserverCount()).To(BeZero())
	})

	It("notifies with the whole list on every change", func() {
		subject.PushBack("a")
		Expect(rec.values).To(Equal([][]string{{"a"}}))

		subject.PushBack("b")
		Expect(rec.values).To(Equal([][]string{{"a"}, {"a", "b"}}))

		Expect(subject.RemoveItem(0)).To(BeTrue())
		Expect(rec.values).To(Equal([][]string{{"a"}, {"a", "b"}, {"b"}}))
	})

	It("invokes a Trigger callback with the current list", func() {
		subject.PushBack("a")

		var triggered recorded[[]string]
		o2 := observer.NewListObserver(subject, triggered.callback, observer.Trigger)
		defer o2.Close()

		Expect(triggered.values).To(Equal([][]string{{"a"}}))
	})

	It("notifies SetIfChanged only when the content differs", func() {
		Expect(subject.SetIfChanged([]string{})).To(BeFalse())
		Expect(subject.SetIfChanged([]string{"a", "b"})).To(BeTrue())
		Expect(subject.SetIfChanged([]string{"a", "b"})).To(BeFalse())
		Expect(subject.SetIfChanged([]string{"b", "a"})).To(BeTrue())

		Expect(rec.values).To(Equal([][]string{{"a", "b"}, {"b", "a"}}))
	})

	It("notifies SetAlways even when the content is the same", func() {
		subject.SetAlways([]string{"a"})
		subject.SetAlways([]string{"a"})

		Expect(rec.values).To(HaveLen(2))
	})

	It("ignores RemoveItem with an index out of range", func() {
		subject.PushBack("a")

		Expect(subject.RemoveItem(1)).To(BeFalse())
		Expect(subject.RemoveItem(-1)).To(BeFalse())
		Expect(rec.values).To(HaveLen(1))
	})

	It("notifies Clear only when the list has items", func() {
		Expect(subject.Clear()).To(BeFalse())
		Expect(rec.values).To(BeEmpty())

		subject.PushBack("a")
		Expect(subject.Clear()).To(BeTrue())
		Expect(rec.values).To(Equal([][]string{{"a"}, {}}))
		Expect(subject.IsEmpty()).To(BeTrue())
	})

	It("sets and inserts items", func() {
		subject.SetAlways([]string{"a", "c"})

		Expect(subject.InsertItem(1, "b")).To(BeTrue())
		Expect(subject.InsertItem(3, "d")).To(BeTrue())
		Expect(subject.InsertItem(5, "x")).To(BeFalse())
		Expect(subject.Get()).To(Equal([]string{"a", "b", "c", "d"}))

		Expect(subject.SetItem(0, "a")).To(BeFalse())
		Expect(subject.SetItem(0, "z")).To(BeTrue())
		Expect(subject.SetItem(4, "z")).To(BeFalse())
		Expect(subject.Get()).To(Equal([]string{"z", "b", "c", "d"}))

		Expect(rec.values).To(HaveLen(4))
	})

	It("answers read queries", func() {
		subject.SetAlways([]string{"a", "b", "a"})

		Expect(subject.Size()).To(Equal(3))
		Expect(subject.IsEmpty()).To(BeFalse())
		Expect(subject.Item(1)).To(Equal("b"))
		Expect(subject.IndexOf("a")).To(Equal(0))
		Expect(subject.IndexOf("x")).To(Equal(observer.InvalidIndex))
		Expect(subject.Contains("b")).To(BeTrue())
		Expect(subject.Contains("x")).To(BeFalse())
	})

	It("isolates the stored list from callers", func() {
		items := []string{"a"}
		subject.SetAlways(items)
		items[0] = "changed"

		got := subject.Get()
		got[0] = "changed too"
		rec.values[0][0] = "changed as well"

		Expect(subject.Get()).To(Equal([]string{"a"}))
	})

	It("panics when observing a nil subject", func() {
		Expect(func() {
			observer.NewListObserver[string](nil, func([]string) {}, observer.Suppress)
		}).To(PanicWith(MatchError("cannot observe an invalid ListSubject")))
	})

	It("compares items with a custom equality", func() {
		type file struct {
			Name string
			Tags []string
		}

		files := observer.NewListSubjectFunc([]file{{Name: "a"}}, func(a, b file) bool {
			return a.Name == b.Name
		})

		Expect(files.SetIfChanged([]file{{Name: "a", Tags: []string{"new"}}})).To(BeFalse())
		Expect(files.IndexOf(file{Name: "a"})).To(Equal(0))
	})
})
