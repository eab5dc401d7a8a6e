package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_defaultStatus(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	if w.StatusCode() != http.StatusOK {
		t.Fatalf("default status = %d", w.StatusCode())
	}
}

func TestWriteHeader_recordsOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError) // ignored

	if w.StatusCode() != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.StatusCode())
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("underlying code = %d", rec.Code)
	}
}

func TestWrite_tracksBytesAndImplicitHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write n=%d err=%v", n, err)
	}
	if w.BytesWritten() != 5 {
		t.Fatalf("bytes = %d", w.BytesWritten())
	}
	if w.StatusCode() != http.StatusOK {
		t.Fatalf("implicit status = %d", w.StatusCode())
	}
}
