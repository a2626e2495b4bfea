package event

import "testing"

type recorder struct {
	last  Event
	count int
}

func (r *recorder) OnEvent(e Event) {
	r.last = e
	r.count++
}

func TestTrigger_AttachAndNotify(t *testing.T) {
	var trig Trigger
	l := &recorder{}
	trig.Attach(l)

	trig.Notify("event")

	if l.last != "event" {
		t.Errorf("last = %q, want event", l.last)
	}
	if l.count != 1 {
		t.Errorf("count = %d, want 1", l.count)
	}
}

func TestTrigger_MultipleListeners(t *testing.T) {
	var trig Trigger
	listeners := make([]*recorder, 5)
	for i := range listeners {
		listeners[i] = &recorder{}
		trig.Attach(listeners[i])
	}

	trig.Notify(Comment)

	for i, l := range listeners {
		if l.last != Comment {
			t.Errorf("listener %d last = %q, want %q", i, l.last, Comment)
		}
	}
}

func TestTrigger_Detach(t *testing.T) {
	var trig Trigger
	listeners := make([]*recorder, 5)
	for i := range listeners {
		listeners[i] = &recorder{}
		trig.Attach(listeners[i])
	}

	trig.Detach(listeners[0])
	trig.Notify(LineOfCode)

	if listeners[0].count != 0 {
		t.Errorf("detached listener notified %d times", listeners[0].count)
	}
	for i := 1; i < len(listeners); i++ {
		if listeners[i].last != LineOfCode {
			t.Errorf("listener %d last = %q, want %q", i, listeners[i].last, LineOfCode)
		}
	}
	if trig.Len() != 4 {
		t.Errorf("Len() = %d, want 4", trig.Len())
	}
}

func TestTrigger_NotificationOrder(t *testing.T) {
	var trig Trigger
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		trig.Attach(ListenerFunc(func(Event) { order = append(order, i) }))
	}

	trig.Notify(Comment)

	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, want [0 1 2]", order)
		}
	}
}

func TestTrigger_DetachFuncIgnored(t *testing.T) {
	var trig Trigger
	f := ListenerFunc(func(Event) {})
	trig.Attach(f)
	trig.Detach(f)
	trig.Detach(&recorder{})
	trig.Attach(nil)

	if trig.Len() != 1 {
		t.Errorf("Len() = %d, want 1", trig.Len())
	}
}
