package solver

import "testing"

func TestLitQueue_PushPop_FIFO(t *testing.T) {
	q := newLitQueue(2)
	q.Push(PositiveLiteral(0))
	q.Push(PositiveLiteral(1))
	q.Push(PositiveLiteral(2))
	q.Push(PositiveLiteral(3))

	want := []Literal{
		PositiveLiteral(0),
		PositiveLiteral(1),
		PositiveLiteral(2),
		PositiveLiteral(3),
	}
	for i, w := range want {
		if q.Size() != len(want)-i {
			t.Fatalf("Size() = %d, want %d", q.Size(), len(want)-i)
		}
		if got := q.Pop(); got != w {
			t.Errorf("Pop() #%d = %v, want %v", i, got, w)
		}
	}
}

func TestLitQueue_GrowWithWraparound(t *testing.T) {
	q := &litQueue{
		ring:  []Literal{6, 8, 2, 4},
		start: 2,
		end:   2,
		size:  4,
		mask:  0b11,
	}
	q.Push(10)

	want := []Literal{2, 4, 6, 8, 10}
	if q.Size() != len(want) {
		t.Fatalf("Size() = %d, want %d", q.Size(), len(want))
	}
	for i, w := range want {
		if got := q.Pop(); got != w {
			t.Errorf("Pop() #%d = %v, want %v", i, got, w)
		}
	}
}

func TestLitQueue_Clear(t *testing.T) {
	q := newLitQueue(1)
	q.Push(0)
	q.Push(2)
	q.Clear()

	if q.Size() != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", q.Size())
	}
}

func TestLitQueue_PopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Pop() on empty queue did not panic")
		}
	}()
	newLitQueue(1).Pop()
}
