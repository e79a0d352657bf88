package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"rooms":[101,102]}`)

	encoded, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(encoded)
	if !ok {
		t.Fatal("decodePayload: not ok")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := gotHdr["X-Custom"]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("X-Custom = %v", got)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0, 0, 0},
		{0, 0, 0, 200, 0, 0, 0, 99}, // header length past end
	}
	for _, bs := range cases {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decodePayload(%v) = ok, want rejection", bs)
		}
	}
}

func TestEncodePayloadEmptyBody(t *testing.T) {
	encoded, err := encodePayload(http.StatusNoContent, http.Header{}, nil)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, _, body, ok := decodePayload(encoded)
	if !ok || status != http.StatusNoContent || len(body) != 0 {
		t.Errorf("round trip = (%d, %q, %v)", status, body, ok)
	}
}
