package llist

import "testing"

func collect(l *List[string, int]) []string {
	var keys []string
	for n := l.Front(); n != nil; n = n.Next() {
		keys = append(keys, n.Key)
	}
	return keys
}

func TestPushFrontOrdersMostRecentFirst(t *testing.T) {
	l := New[string, int]()
	l.PushFront("a", 1, 1)
	l.PushFront("b", 2, 1)
	l.PushFront("c", 3, 1)

	got := collect(l)
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMoveToFrontPromotes(t *testing.T) {
	l := New[string, int]()
	a := l.PushFront("a", 1, 1)
	l.PushFront("b", 2, 1)
	l.PushFront("c", 3, 1)

	l.MoveToFront(a)
	got := collect(l)
	want := []string{"a", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRemoveDetachesNode(t *testing.T) {
	l := New[string, int]()
	l.PushFront("a", 1, 1)
	b := l.PushFront("b", 2, 1)
	l.PushFront("c", 3, 1)

	l.Remove(b)
	got := collect(l)
	want := []string{"c", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if l.Len() != 2 {
		t.Fatalf("expected length 2 after remove, got %d", l.Len())
	}
}

func TestBackReturnsLeastRecentlyUsed(t *testing.T) {
	l := New[string, int]()
	l.PushFront("a", 1, 1)
	l.PushFront("b", 2, 1)

	if back := l.Back(); back.Key != "a" {
		t.Fatalf("expected back to be %q, got %q", "a", back.Key)
	}
}

func TestSizeTracksWeight(t *testing.T) {
	l := New[string, int]()
	l.PushFront("a", 1, 10)
	l.PushFront("b", 2, 5)
	if l.Size() != 15 {
		t.Fatalf("expected size 15, got %d", l.Size())
	}
	l.Remove(l.Back())
	if l.Size() != 5 {
		t.Fatalf("expected size 5 after removing weight-10 node, got %d", l.Size())
	}
}

func TestEmptyListBackFrontNil(t *testing.T) {
	l := New[string, int]()
	if l.Back() != nil || l.Front() != nil {
		t.Fatalf("expected nil Back/Front on empty list")
	}
}
