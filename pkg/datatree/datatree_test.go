package datatree

import "testing"

func TestNewWithExplicitRootHash(t *testing.T) {
	tr, err := New[string]("root-hash")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tr.HeadHash() != "root-hash" {
		t.Fatalf("expected head hash \"root-hash\", got %q", tr.HeadHash())
	}
}

func TestNewDrawsRandomHeadHashWhenEmpty(t *testing.T) {
	tr, err := New[string]("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tr.HeadHash() == "" {
		t.Fatalf("expected a non-empty generated head hash")
	}
}

func TestAddItemUnderHeadAndLookup(t *testing.T) {
	tr, _ := New[string]("head")
	hash, err := tr.AddItem("payload", tr.HeadHash(), "")
	if err != nil {
		t.Fatalf("additem: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected a generated item hash")
	}
	v, ok := tr.GetItem(hash)
	if !ok || v != "payload" {
		t.Fatalf("expected GetItem to return \"payload\", got %q ok=%v", v, ok)
	}
	if !tr.IsItemALeaf(hash) {
		t.Fatalf("expected freshly added item to be a leaf")
	}
}

func TestAddItemWithCallerSuppliedHash(t *testing.T) {
	tr, _ := New[string]("head")
	hash, err := tr.AddItem("payload", tr.HeadHash(), "custom-hash")
	if err != nil {
		t.Fatalf("additem: %v", err)
	}
	if hash != "custom-hash" {
		t.Fatalf("expected caller-supplied hash honored, got %q", hash)
	}
	if _, err := tr.AddItem("other", tr.HeadHash(), "custom-hash"); err == nil {
		t.Fatalf("expected duplicate item hash to be rejected")
	}
}

func TestAddItemRejectsUnknownParent(t *testing.T) {
	tr, _ := New[string]("head")
	if _, err := tr.AddItem("payload", "does-not-exist", ""); err == nil {
		t.Fatalf("expected unknown parent hash to be rejected")
	}
}

func TestParentBecomesNonLeafAfterChildAdded(t *testing.T) {
	tr, _ := New[string]("head")
	parent, _ := tr.AddItem("p", tr.HeadHash(), "")
	if !tr.IsItemALeaf(parent) {
		t.Fatalf("expected parent to start as a leaf")
	}
	tr.AddItem("c", parent, "")
	if tr.IsItemALeaf(parent) {
		t.Fatalf("expected parent to stop being a leaf once it has a child")
	}
}

func TestGetParentForItem(t *testing.T) {
	tr, _ := New[string]("head")
	child, _ := tr.AddItem("c", tr.HeadHash(), "")
	parentHash, ok := tr.GetParentForItem(child)
	if !ok || parentHash != tr.HeadHash() {
		t.Fatalf("expected parent hash %q, got %q ok=%v", tr.HeadHash(), parentHash, ok)
	}
}

func TestGetChildrenOfItemDirectAndRecursive(t *testing.T) {
	tr, _ := New[string]("head")
	a, _ := tr.AddItem("a", tr.HeadHash(), "")
	b, _ := tr.AddItem("b", a, "")
	tr.AddItem("c", b, "")

	direct := tr.GetChildrenOfItem(a, false)
	if len(direct) != 1 || direct[0].Hash != b {
		t.Fatalf("expected exactly one direct child %q, got %v", b, direct)
	}

	all := tr.GetChildrenOfItem(a, true)
	if len(all) != 2 {
		t.Fatalf("expected 2 transitive children, got %d", len(all))
	}
}

func TestGetAllLeavesAndAllItems(t *testing.T) {
	tr, _ := New[string]("head")
	a, _ := tr.AddItem("a", tr.HeadHash(), "")
	tr.AddItem("b", a, "")

	leaves := tr.GetAllLeaves()
	if len(leaves) != 1 || leaves[0].Value != "b" {
		t.Fatalf("expected exactly leaf \"b\", got %v", leaves)
	}
	all := tr.GetAllItems()
	if len(all) != 2 {
		t.Fatalf("expected 2 total items, got %d", len(all))
	}
}

func TestDeepestPrefersMaxDepth(t *testing.T) {
	tr, _ := New[string]("head")
	shallow, _ := tr.AddItem("shallow-leaf", tr.HeadHash(), "")
	a, _ := tr.AddItem("a", tr.HeadHash(), "")
	b, _ := tr.AddItem("b", a, "")
	deep, _ := tr.AddItem("deep-leaf", b, "")

	got, ok := tr.Deepest()
	if !ok {
		t.Fatalf("expected a deepest leaf to be found")
	}
	if got != deep {
		t.Fatalf("expected deepest leaf %q, got %q (shallow was %q)", deep, got, shallow)
	}
}

func TestDeleteItemRecursive(t *testing.T) {
	tr, _ := New[string]("head")
	a, _ := tr.AddItem("a", tr.HeadHash(), "")
	b, _ := tr.AddItem("b", a, "")

	if err := tr.DeleteItem(a, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := tr.GetItem(a); ok {
		t.Fatalf("expected a removed")
	}
	if _, ok := tr.GetItem(b); ok {
		t.Fatalf("expected child b removed along with its parent when deleteChildren=true")
	}
}

func TestDeleteItemReparentsChildrenWhenNotDeletingChildren(t *testing.T) {
	tr, _ := New[string]("head")
	a, _ := tr.AddItem("a", tr.HeadHash(), "")
	b, _ := tr.AddItem("b", a, "")

	if err := tr.DeleteItem(a, false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := tr.GetItem(a); ok {
		t.Fatalf("expected a removed")
	}
	parentHash, ok := tr.GetParentForItem(b)
	if !ok {
		t.Fatalf("expected b to still exist")
	}
	if parentHash != tr.HeadHash() {
		t.Fatalf("expected b re-parented onto head hash %q, got %q", tr.HeadHash(), parentHash)
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	tr, _ := New[string]("head")
	if err := tr.DeleteItem("missing", false); err == nil {
		t.Fatalf("expected deleting an unknown item to fail")
	}
}

func TestDeleteLastChildMakesParentLeafAgain(t *testing.T) {
	tr, _ := New[string]("head")
	a, _ := tr.AddItem("a", tr.HeadHash(), "")
	b, _ := tr.AddItem("b", a, "")

	if err := tr.DeleteItem(b, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !tr.IsItemALeaf(a) {
		t.Fatalf("expected a to become a leaf again once its only child is gone")
	}
}
