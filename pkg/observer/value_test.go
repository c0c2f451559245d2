package observer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/nginx/state-observer/pkg/observer"
	"github.com/nginx/state-observer/pkg/observer/observerfakes"
)

// recorded collects the values passed to a callback.
type recorded[T any] struct {
	values []T
}

func (r *recorded[T]) callback(v T) {
	r.values = append(r.values, v)
}

var _ = Describe("ValueSubject", func() {
	var subject *observer.ValueSubject[int]

	BeforeEach(func() {
		subject = observer.NewValueSubject(5, observer.WithLogger(zap.New()), observer.WithName("test"))
	})

	It("returns the initial value and has no observers", func() {
		Expect(subject.Get()).To(Equal(5))
		Expect(subject.ObserverCount()).To(BeZero())
		Expect(subject.Name()).To(Equal("test"))
	})

	It("invokes the callback with the current value when subscribing with Trigger", func() {
		var rec recorded[int]

		o := observer.NewValueObserver(subject, rec.callback, observer.Trigger)
		defer o.Close()

		Expect(rec.values).To(Equal([]int{5}))
		Expect(subject.ObserverCount()).To(Equal(1))
	})

	It("doesn't invoke the callback when subscribing with Suppress", func() {
		var rec recorded[int]

		o := observer.NewValueObserver(subject, rec.callback, observer.Suppress)
		defer o.Close()

		Expect(rec.values).To(BeEmpty())
	})

	It("notifies only when SetIfChanged changes the value", func() {
		var rec recorded[int]

		o := observer.NewValueObserver(subject, rec.callback, observer.Trigger)
		defer o.Close()

		Expect(subject.SetIfChanged(5)).To(BeFalse())
		Expect(rec.values).To(Equal([]int{5}))

		Expect(subject.SetIfChanged(6)).To(BeTrue())
		Expect(rec.values).To(Equal([]int{5, 6}))
		Expect(subject.Get()).To(Equal(6))
	})

	It("counts one notification per SetIfChanged call that differs from the stored value", func() {
		var rec recorded[int]

		o := observer.NewValueObserver(subject, rec.callback, observer.Suppress)
		defer o.Close()

		inputs := []int{5, 5, 1, 1, 2, 5, 5, 5, 3}
		expected := 0
		prev := subject.Get()
		for _, v := range inputs {
			if v != prev {
				expected++
			}
			prev = v
			subject.SetIfChanged(v)
		}

		Expect(rec.values).To(HaveLen(expected))
		Expect(rec.values).To(Equal([]int{1, 2, 5, 3}))
	})

	It("notifies on every SetAlways call, even with the same value", func() {
		var rec recorded[int]

		o := observer.NewValueObserver(subject, rec.callback, observer.Suppress)
		defer o.Close()

		subject.SetAlways(5)
		subject.SetAlways(5)
		subject.SetAlways(5)

		Expect(rec.values).To(Equal([]int{5, 5, 5}))
	})

	It("updates the value without observers", func() {
		Expect(subject.SetIfChanged(7)).To(BeTrue())
		subject.SetAlways(8)
		Expect(subject.Get()).To(Equal(8))
	})

	It("tracks the number of live observers", func() {
		const created = 6
		observers := make([]*observer.ValueObserver[int], 0, created)

		for range created {
			observers = append(observers, observer.NewValueObserver(subject, func(int) {}, observer.Suppress))
		}
		Expect(subject.ObserverCount()).To(Equal(created))

		observers[0].Close()
		observers[3].Close()
		observers[5].Close()
		Expect(subject.ObserverCount()).To(Equal(created - 3))

		observers[3].Close()
		Expect(subject.ObserverCount()).To(Equal(created - 3))
	})

	It("never invokes a callback after Close", func() {
		var rec recorded[int]

		o := observer.NewValueObserver(subject, rec.callback, observer.Suppress)
		subject.SetAlways(1)
		o.Close()
		subject.SetAlways(2)
		o.Close()
		subject.SetAlways(3)

		Expect(rec.values).To(Equal([]int{1}))
		Expect(subject.ObserverCount()).To(BeZero())
	})

	It("panics when observing a nil subject", func() {
		Expect(func() {
			observer.NewValueObserver[int](nil, func(int) {}, observer.Trigger)
		}).To(PanicWith(BeAssignableToTypeOf(&observer.InvalidSubjectError{})))
	})

	It("panics when observing a subject that was not created by a constructor", func() {
		Expect(func() {
			observer.NewValueObserver(&observer.ValueSubject[int]{}, func(int) {}, observer.Trigger)
		}).To(PanicWith(MatchError("cannot observe an invalid ValueSubject")))
	})

	Describe("notification pass", func() {
		var order []string

		BeforeEach(func() {
			subject = observer.NewValueSubject(0)
			order = nil
		})

		It("invokes callbacks in subscription order", func() {
			var observers []*observer.ValueObserver[int]
			for _, name := range []string{"first", "second", "third"} {
				observers = append(observers, observer.NewValueObserver(subject, func(int) {
					order = append(order, name)
				}, observer.Suppress))
			}
			defer func() {
				for _, o := range observers {
					o.Close()
				}
			}()

			subject.SetAlways(7)

			Expect(order).To(Equal([]string{"first", "second", "third"}))
		})

		It("skips an observer closed by another callback of the same pass", func() {
			var rec1, rec2 recorded[int]
			var o1 *observer.ValueObserver[int]

			o1 = observer.NewValueObserver(subject, rec1.callback, observer.Suppress)
			o2 := observer.NewValueObserver(subject, func(v int) {
				rec2.callback(v)
				o1.Close()
			}, observer.Suppress)
			defer o2.Close()

			subject.SetAlways(7)
			Expect(rec1.values).To(Equal([]int{7}))
			Expect(rec2.values).To(Equal([]int{7}))

			subject.SetAlways(8)
			Expect(rec1.values).To(Equal([]int{7}))
			Expect(rec2.values).To(Equal([]int{7, 8}))
			Expect(subject.ObserverCount()).To(Equal(1))
		})

		It("doesn't invoke an observer closed earlier in the same pass", func() {
			var rec2 recorded[int]
			var o2 *observer.ValueObserver[int]

			o1 := observer.NewValueObserver(subject, func(int) {
				o2.Close()
			}, observer.Suppress)
			defer o1.Close()
			o2 = observer.NewValueObserver(subject, rec2.callback, observer.Suppress)

			subject.SetAlways(1)

			Expect(rec2.values).To(BeEmpty())
		})

		It("doesn't notify an observer subscribed during the pass about the in-flight change", func() {
			var added recorded[int]
			var inner *observer.ValueObserver[int]

			outer := observer.NewValueObserver(subject, func(int) {
				if inner == nil {
					inner = observer.NewValueObserver(subject, added.callback, observer.Suppress)
				}
			}, observer.Suppress)
			defer outer.Close()

			subject.SetAlways(1)
			Expect(inner).ToNot(BeNil())
			Expect(added.values).To(BeEmpty())

			subject.SetAlways(2)
			Expect(added.values).To(Equal([]int{2}))

			inner.Close()
		})

		It("runs a nested mutation as its own complete pass", func() {
			var rec1, rec2 recorded[int]

			o1 := observer.NewValueObserver(subject, func(v int) {
				order = append(order, "first")
				rec1.callback(v)
				if v == 1 {
					subject.SetIfChanged(2)
				}
			}, observer.Suppress)
			defer o1.Close()
			o2 := observer.NewValueObserver(subject, func(v int) {
				order = append(order, "second")
				rec2.callback(v)
			}, observer.Suppress)
			defer o2.Close()

			subject.SetAlways(1)

			Expect(order).To(Equal([]string{"first", "first", "second", "second"}))
			Expect(rec1.values).To(Equal([]int{1, 2}))
			// the outer pass resumes with the current value
			Expect(rec2.values).To(Equal([]int{2, 2}))
			Expect(subject.Get()).To(Equal(2))
		})
	})

	Describe("with a recorder", func() {
		It("records observer counts and notification passes", func() {
			fakeRecorder := &observerfakes.FakeRecorder{}
			subject = observer.NewValueSubject(0, observer.WithName("recorded"), observer.WithRecorder(fakeRecorder))

			o := observer.NewValueObserver(subject, func(int) {}, observer.Suppress)
			Expect(fakeRecorder.RecordObserverCountCallCount()).To(Equal(1))
			name, count := fakeRecorder.RecordObserverCountArgsForCall(0)
			Expect(name).To(Equal("recorded"))
			Expect(count).To(Equal(1))

			subject.SetAlways(1)
			Expect(fakeRecorder.RecordNotificationCallCount()).To(Equal(1))
			name, count = fakeRecorder.RecordNotificationArgsForCall(0)
			Expect(name).To(Equal("recorded"))
			Expect(count).To(Equal(1))

			o.Close()
			o.Close()
			Expect(fakeRecorder.RecordObserverCountCallCount()).To(Equal(2))
			_, count = fakeRecorder.RecordObserverCountArgsForCall(1)
			Expect(count).To(BeZero())

			subject.SetAlways(2)
			Expect(fakeRecorder.RecordNotificationCallCount()).To(Equal(1))
		})
	})

	Describe("with deep equality", func() {
		type palette struct {
			Name   string
			Colors []string
		}

		It("compares values that don't support ==", func() {
			s := observer.NewValueSubjectDeep(palette{Name: "dark", Colors: []string{"#000"}})
			var rec recorded[palette]

			o := observer.NewValueObserver(s, rec.callback, observer.Suppress)
			defer o.Close()

			Expect(s.SetIfChanged(palette{Name: "dark", Colors: []string{"#000"}})).To(BeFalse())
			Expect(s.SetIfChanged(palette{Name: "dark", Colors: []string{"#111"}})).To(BeTrue())
			Expect(rec.values).To(HaveLen(1))
		})
	})

	Describe("with a custom equality", func() {
		It("uses it for SetIfChanged", func() {
			sameLength := func(a, b string) bool {
				return len(a) == len(b)
			}
			s := observer.NewValueSubjectFunc("abc", sameLength)

			Expect(s.SetIfChanged("xyz")).To(BeFalse())
			Expect(s.SetIfChanged("abcd")).To(BeTrue())
		})

		It("panics on a nil equality", func() {
			Expect(func() {
				observer.NewValueSubjectFunc[string]("abc", nil)
			}).To(Panic())
		})
	})
})
