package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/suffixctl/internal/attribution"
	"github.com/danmuck/suffixctl/internal/config"
	"github.com/danmuck/suffixctl/internal/protocol/calldata"
	"github.com/danmuck/suffixctl/internal/protocol/hexdata"
	"github.com/danmuck/suffixctl/internal/protocol/suffix"
	"github.com/danmuck/suffixctl/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	cfg := config.Default()
	a, err := attribution.New(attribution.Options{
		Code:     cfg.BuilderCode,
		Contract: cfg.Contract(),
		Policy:   cfg.Policy(),
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("attributor: %v", err)
	}
	return New(cfg, a, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 && strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s: %v body=%s", method, path, err, rr.Body.String())
		}
	}
	return rr.Code, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, body := do(t, s, http.MethodGet, "/health", "")
	if code != http.StatusOK || body["status"] != "ok" || body["service"] != config.DefaultName {
		t.Fatalf("unexpected health: %d %+v", code, body)
	}
}

func TestEncodeEndpoint(t *testing.T) {
	s := newTestServer(t)
	code, body := do(t, s, http.MethodPost, "/v1/suffix/encode", `{"code":"bc_291jsyn1"}`)
	if code != http.StatusOK {
		t.Fatalf("unexpected status: %d %+v", code, body)
	}
	if body["suffix"] != "0x62635f3239316a73796e310b0080218021802180218021802180218021" {
		t.Fatalf("unexpected suffix: %v", body["suffix"])
	}
	if body["length"] != float64(29) {
		t.Fatalf("unexpected length: %v", body["length"])
	}

	code, body = do(t, s, http.MethodPost, "/v1/suffix/encode", `{"code":""}`)
	if code != http.StatusOK || body["length"] != float64(suffix.OverheadLen) {
		t.Fatalf("empty code should encode: %d %+v", code, body)
	}

	code, _ = do(t, s, http.MethodPost, "/v1/suffix/encode", `{"code":"`+strings.Repeat("a", 256)+`"}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for long code, got %d", code)
	}

	code, _ = do(t, s, http.MethodPost, "/v1/suffix/encode", `{}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing code, got %d", code)
	}
}

func TestDecodeEndpointClassifiesAndTallies(t *testing.T) {
	s := newTestServer(t)

	trailer, _ := suffix.EncodeIdentifier("bc_291jsyn1")
	data := hexdata.Format(suffix.Combine([]byte{0xde, 0xad, 0xbe, 0xef}, trailer))
	code, body := do(t, s, http.MethodPost, "/v1/suffix/decode", `{"data":"`+data+`"}`)
	if code != http.StatusOK || body["status"] != "present" {
		t.Fatalf("unexpected present decode: %d %+v", code, body)
	}
	if body["code"] != "bc_291jsyn1" || body["payload"] != "0xdeadbeef" || body["schema_id"] != float64(0) {
		t.Fatalf("unexpected present body: %+v", body)
	}

	code, body = do(t, s, http.MethodPost, "/v1/suffix/decode", `{"data":"0x40d097c3"}`)
	if code != http.StatusOK || body["status"] != "absent" {
		t.Fatalf("unexpected absent decode: %d %+v", code, body)
	}

	code, _ = do(t, s, http.MethodPost, "/v1/suffix/decode", `{"data":"0xabc"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for odd hex, got %d", code)
	}

	snap := s.Tally().Snapshot()
	if snap.Present != 1 || snap.Absent != 1 {
		t.Fatalf("unexpected tally: %+v", snap)
	}
	code, body = do(t, s, http.MethodGet, "/v1/indexer/tally", "")
	if code != http.StatusOK || body["present"] != float64(1) {
		t.Fatalf("unexpected tally endpoint: %d %+v", code, body)
	}
}

func TestMintEndpoint(t *testing.T) {
	s := newTestServer(t)
	code, body := do(t, s, http.MethodPost, "/v1/calls/mint", `{"to":"0x00000000000000000000000000000000000000ff"}`)
	if code != http.StatusOK {
		t.Fatalf("unexpected status: %d %+v", code, body)
	}
	if body["to"] != config.DefaultNFTContract || body["value"] != float64(0) {
		t.Fatalf("unexpected call: %+v", body)
	}

	raw, err := hexdata.Parse(body["data"].(string))
	if err != nil {
		t.Fatalf("parse data: %v", err)
	}
	attr, rest, err := suffix.ExtractTrailer(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	to, _ := calldata.ParseAddress("0x00000000000000000000000000000000000000ff")
	if attr.Code != config.DefaultBuilderCode || !bytes.Equal(rest, calldata.SafeMint(to)) {
		t.Fatalf("unexpected call data: %+v %x", attr, rest)
	}

	code, _ = do(t, s, http.MethodPost, "/v1/calls/mint", `{"to":"0x1234"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad address, got %d", code)
	}
}

func TestNotificationWebhook(t *testing.T) {
	s := newTestServer(t)
	code, body := do(t, s, http.MethodPost, "/api/notification", `{"event":"frame_added","note":"`+strings.Repeat("x", 400)+`"}`)
	if code != http.StatusOK || body["ok"] != true {
		t.Fatalf("unexpected webhook response: %d %+v", code, body)
	}
	code, body = do(t, s, http.MethodPost, "/api/notification", `{not json`)
	if code != http.StatusBadRequest || body["error"] != "bad request" {
		t.Fatalf("unexpected bad webhook response: %d %+v", code, body)
	}
}

func TestManifest(t *testing.T) {
	s := newTestServer(t)
	code, body := do(t, s, http.MethodGet, "/.well-known/farcaster.json", "")
	if code != http.StatusOK {
		t.Fatalf("unexpected status: %d", code)
	}
	frame, ok := body["frame"].(map[string]any)
	if !ok {
		t.Fatalf("missing frame: %+v", body)
	}
	if frame["webhookUrl"] != config.DefaultPublicURL+"/api/notification" {
		t.Fatalf("unexpected webhook url: %v", frame["webhookUrl"])
	}
	if !strings.Contains(frame["description"].(string), config.DefaultBuilderCode) {
		t.Fatalf("description missing builder code: %v", frame["description"])
	}
}

func TestNotificationWebhookToken(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default()
	cfg.WebhookToken = "s3cret"
	a, err := attribution.New(attribution.Options{Code: cfg.BuilderCode, Contract: cfg.Contract(), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("attributor: %v", err)
	}
	s := New(cfg, a, zerolog.Nop())

	code, _ := do(t, s, http.MethodPost, "/api/notification", `{"event":"x"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/notification", strings.NewReader(`{"event":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer s3cret")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", rr.Code, rr.Body.String())
	}
}
