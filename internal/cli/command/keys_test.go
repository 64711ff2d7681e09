package command

import (
	"strings"
	"testing"
)

func TestKeys(t *testing.T) {
	st, addr := startTestServer(t)
	st.Set([]byte("beta"), []byte("2"))
	st.Set([]byte("alpha"), []byte("1"))

	ctx, out := testContext(t, addr)
	if err := keysAction(ctx); err != nil {
		t.Fatalf("keysAction() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "VALUE") {
		t.Errorf("keys output missing table header:\n%s", got)
	}
	ia := strings.Index(got, "alpha")
	ib := strings.Index(got, "beta")
	if ia < 0 || ib < 0 {
		t.Fatalf("keys output missing keys:\n%s", got)
	}
	if ia > ib {
		t.Errorf("keys not sorted:\n%s", got)
	}
}

func TestKeys_ExplicitPattern(t *testing.T) {
	st, addr := startTestServer(t)
	st.Set([]byte("user:1"), []byte("x"))

	ctx, out := testContext(t, addr, "user:*")
	if err := keysAction(ctx); err != nil {
		t.Fatalf("keysAction() error = %v", err)
	}
	if !strings.Contains(out.String(), "user:1") {
		t.Errorf("keys output = %q, want user:1", out.String())
	}
}

func TestKeys_TooManyArgs(t *testing.T) {
	_, addr := startTestServer(t)

	ctx, _ := testContext(t, addr, "a", "b")
	if err := keysAction(ctx); err == nil {
		t.Error("keysAction() with two arguments should fail")
	}
}

func TestKeys_JSONOutput(t *testing.T) {
	st, addr := startTestServer(t)
	st.Set([]byte("only"), []byte("1"))

	ctx, out := testContext(t, addr, "-o", "json")
	if err := keysAction(ctx); err != nil {
		t.Fatalf("keysAction() error = %v", err)
	}
	if !strings.Contains(out.String(), `"only"`) {
		t.Errorf("json output = %q, want [\"only\"]", out.String())
	}
}

func TestFlushAll(t *testing.T) {
	st, addr := startTestServer(t)
	st.Set([]byte("a"), []byte("1"))
	st.Set([]byte("b"), []byte("2"))

	ctx, out := testContext(t, addr)
	if err := flushAllAction(ctx); err != nil {
		t.Fatalf("flushAllAction() error = %v", err)
	}
	if !strings.Contains(out.String(), "OK") {
		t.Errorf("flushall output = %q, want OK", out.String())
	}
	if st.Len() != 0 {
		t.Errorf("store length = %d, want 0", st.Len())
	}
}

func TestFlushAll_RejectsArgs(t *testing.T) {
	_, addr := startTestServer(t)

	ctx, _ := testContext(t, addr, "now")
	if err := flushAllAction(ctx); err == nil {
		t.Error("flushAllAction() with arguments should fail")
	}
}
