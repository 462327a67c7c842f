package responseformat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestWriteResponse(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		accept      string
		contentType string
	}{
		{"default", "/x", "", ContentTypeJSON},
		{"query", "/x?format=msgpack", "", ContentTypeMsgPack},
		{"accept header", "/x", "application/x-msgpack, */*", ContentTypeMsgPack},
		{"other format", "/x?format=xml", "", ContentTypeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()

			if err := NewFormatter().WriteResponse(rec, req, http.StatusTeapot, sample{Name: "moon", Value: 0.5}); err != nil {
				t.Fatalf("WriteResponse returned error: %v", err)
			}
			if rec.Code != http.StatusTeapot {
				t.Errorf("status = %d, expected %d", rec.Code, http.StatusTeapot)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, expected %q", ct, tt.contentType)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Error("missing CORS header")
			}

			// Both encodings use the json field names.
			var got map[string]any
			var err error
			if tt.contentType == ContentTypeMsgPack {
				err = msgpack.Unmarshal(rec.Body.Bytes(), &got)
			} else {
				err = json.Unmarshal(rec.Body.Bytes(), &got)
			}
			if err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if got["name"] != "moon" || got["value"] != 0.5 {
				t.Errorf("decoded %v", got)
			}
		})
	}
}
