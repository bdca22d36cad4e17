package diskcache

import (
	"os"
	"testing"
)

func TestOpenPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir() + "/cache"

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Add([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected persisted directory to remain, got %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got := reopened.Get([]byte("k"), nil); string(got) != "v" {
		t.Fatalf("expected v after reopen, got %q", got)
	}
}

func TestOpenTempDeletesOnClose(t *testing.T) {
	c, err := Open(t.TempDir() + "/irrelevant")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Close()

	temp, err := OpenTemp("arclet-test-temp")
	if err != nil {
		t.Fatalf("opentemp: %v", err)
	}
	dir := temp.Dir()
	if err := temp.Add([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := temp.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected temp directory removed, got err=%v", err)
	}
}

func TestSetPersistOverridesCleanup(t *testing.T) {
	temp, err := OpenTemp("arclet-test-persist")
	if err != nil {
		t.Fatalf("opentemp: %v", err)
	}
	dir := temp.Dir()
	temp.SetPersist(true)
	if err := temp.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	defer os.RemoveAll(dir)
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to survive after SetPersist(true), got %v", err)
	}
}

func TestAddAlwaysOverwrites(t *testing.T) {
	c, err := OpenTemp("arclet-test-overwrite")
	if err != nil {
		t.Fatalf("opentemp: %v", err)
	}
	defer c.Close()

	if err := c.Add([]byte("k"), []byte("v1")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add([]byte("k"), []byte("v2")); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if got := c.Get([]byte("k"), nil); string(got) != "v2" {
		t.Fatalf("expected v2, got %q", got)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	c, err := OpenTemp("arclet-test-delete")
	if err != nil {
		t.Fatalf("opentemp: %v", err)
	}
	defer c.Close()

	_ = c.Add([]byte("k"), []byte("v"))
	if !c.Delete([]byte("k")) {
		t.Fatalf("expected Delete to report existing key")
	}
	if c.Delete([]byte("k")) {
		t.Fatalf("expected second Delete to report absence")
	}
}
