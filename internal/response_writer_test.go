package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_Write(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	n, err := rw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 5 || rw.Size() != 5 {
		t.Errorf("Write() = %d, Size() = %d, want 5", n, rw.Size())
	}
	if w.Code != http.StatusOK {
		t.Errorf("implicit status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "hello" {
		t.Errorf("body = %q, want %q", w.Body.String(), "hello")
	}
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	var order []int
	rw.OnBeforeWrite(func() {
		order = append(order, 1)
		rw.Header().Set("Content-Language", "es")
	})
	rw.OnBeforeWrite(func() { order = append(order, 2) })

	_, _ = rw.Write([]byte("a"))
	_, _ = rw.Write([]byte("b"))
	rw.WriteHeader(http.StatusTeapot)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("hooks ran %v, want [1 2]", order)
	}
	if got := w.Header().Get("Content-Language"); got != "es" {
		t.Errorf("Content-Language = %q, want %q", got, "es")
	}
}

func TestResponseWriter_Wrap(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if NewResponseWriter(rw) != rw {
		t.Error("wrapping a ResponseWriter twice must return the same writer")
	}
	if rw.Unwrap() != w {
		t.Error("Unwrap() did not return the underlying writer")
	}

	rw.Flush()
	if !w.Flushed {
		t.Error("Flush() was not forwarded")
	}
}
