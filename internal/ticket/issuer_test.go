package ticket

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/train-ticket-validation/internal/graph"
)

func testKeys(t *testing.T) *KeyPair {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &KeyPair{Private: priv, Public: &priv.PublicKey}
}

// testIssuer uses a network where A-B is a direct edge and C is reachable
// from A only through B.
func testIssuer(t *testing.T) *Issuer {
	t.Helper()
	g := graph.New()
	g.AddRoute("A", "B", 10)
	g.AddRoute("B", "C", 10)
	return NewIssuer(g, testKeys(t))
}

func validRequest(now time.Time) Request {
	return Request{
		FromStation:       "A",
		ToStation:         "B",
		FromDatetime:      now.Add(time.Hour),
		ToDatetime:        now.Add(2 * time.Hour),
		TicketType:        "single",
		ValidatingMethode: "qr",
		UserProvidedID:    "passenger-42",
	}
}

func TestIssueRejectsUnknownOrigin(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	req := validRequest(now)
	req.FromStation = "Atlantis"
	if _, err := i.Issue(req, now); !errors.Is(err, ErrUnknownOrigin) {
		t.Fatalf("got %v, want ErrUnknownOrigin", err)
	}
}

func TestIssueRejectsTransitivelyReachableDestination(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	req := validRequest(now)
	req.ToStation = "C" // reachable via B, but not adjacent
	if _, err := i.Issue(req, now); !errors.Is(err, ErrNotDirectlyConnected) {
		t.Fatalf("got %v, want ErrNotDirectlyConnected", err)
	}
}

func TestIssueRejectsPastWindow(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()

	req := validRequest(now)
	req.FromDatetime = now.Add(-time.Hour)
	if _, err := i.Issue(req, now); !errors.Is(err, ErrWindowInPast) {
		t.Fatalf("window start in past: got %v, want ErrWindowInPast", err)
	}

	req = validRequest(now)
	req.ToDatetime = now.Add(-time.Minute)
	if _, err := i.Issue(req, now); !errors.Is(err, ErrWindowInPast) {
		t.Fatalf("window end in past: got %v, want ErrWindowInPast", err)
	}
}

func TestIssueAcceptsWindowStartingExactlyNow(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	// Both bounds must be >= now; a window opening at this very instant is
	// valid, only strictly earlier instants are rejected.
	req := validRequest(now)
	req.FromDatetime = now
	req.ToDatetime = now.Add(time.Hour)
	if _, err := i.Issue(req, now); err != nil {
		t.Fatalf("window starting exactly now must be accepted, got %v", err)
	}

	req = validRequest(now)
	req.FromDatetime = now
	req.ToDatetime = now
	if _, err := i.Issue(req, now); err != nil {
		t.Fatalf("zero-length window at now must be accepted, got %v", err)
	}
}

func TestIssueRejectsInvertedWindow(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	req := validRequest(now)
	req.FromDatetime = now.Add(3 * time.Hour)
	req.ToDatetime = now.Add(2 * time.Hour)
	if _, err := i.Issue(req, now); !errors.Is(err, ErrInvertedWindow) {
		t.Fatalf("got %v, want ErrInvertedWindow", err)
	}
}

func TestIssueValidationOrder(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	// Everything is wrong at once; the unknown origin must win.
	req := Request{
		FromStation:  "Atlantis",
		ToStation:    "C",
		FromDatetime: now.Add(-2 * time.Hour),
		ToDatetime:   now.Add(-3 * time.Hour),
	}
	if _, err := i.Issue(req, now); !errors.Is(err, ErrUnknownOrigin) {
		t.Fatalf("got %v, want ErrUnknownOrigin to win", err)
	}
}

func TestIssueProducesVerifiableTicket(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	signed, err := i.Issue(validRequest(now), now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if signed.Payload["from_station"] != "A" || signed.Payload["to_station"] != "B" {
		t.Fatalf("unexpected stations in payload: %v", signed.Payload)
	}
	if signed.Payload["price"] != Price {
		t.Fatalf("payload price = %v, want %d", signed.Payload["price"], Price)
	}
	serial, _ := signed.Payload["random-ticket-number"].(string)
	if len(serial) != 32 {
		t.Fatalf("serial %q is not a 128-bit hex value", serial)
	}

	if !i.Keys.Verify(signed.Payload, signed.Signature) {
		t.Fatalf("freshly issued ticket must verify")
	}
}

func TestVerifyRejectsAnyAlteredField(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	signed, err := i.Issue(validRequest(now), now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for key := range signed.Payload {
		tampered := make(map[string]any, len(signed.Payload))
		for k, v := range signed.Payload {
			tampered[k] = v
		}
		switch v := tampered[key].(type) {
		case string:
			tampered[key] = v + "x"
		case int:
			tampered[key] = v + 1
		default:
			t.Fatalf("unexpected payload type for %q: %T", key, v)
		}
		if i.Keys.Verify(tampered, signed.Signature) {
			t.Fatalf("tampered field %q must invalidate the signature", key)
		}
	}
}

func TestVerifyRejectsTypeDrift(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	signed, err := i.Issue(validRequest(now), now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	drifted := make(map[string]any, len(signed.Payload))
	for k, v := range signed.Payload {
		drifted[k] = v
	}
	drifted["price"] = "20" // same digits, different JSON type
	if i.Keys.Verify(drifted, signed.Signature) {
		t.Fatalf("type drift must invalidate the signature")
	}
}

func TestVerifySurvivesJSONRoundTrip(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	signed, err := i.Issue(validRequest(now), now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// A verifier receives the payload over the wire; numbers arrive as JSON
	// numbers, which must canonicalize to the same bytes as the originals.
	wire, err := json.Marshal(signed.Payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var received map[string]any
	if err := json.Unmarshal(wire, &received); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if !i.Keys.Verify(received, signed.Signature) {
		t.Fatalf("payload must still verify after a JSON round trip")
	}
}

func TestVerifyRejectsGarbageSignature(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	signed, err := i.Issue(validRequest(now), now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if i.Keys.Verify(signed.Payload, "not base64!!") {
		t.Fatalf("undecodable signature must verify as false")
	}
	if i.Keys.Verify(signed.Payload, "") {
		t.Fatalf("empty signature must verify as false")
	}
}

func TestCanonicalEncodeIsDeterministic(t *testing.T) {
	payload := map[string]any{
		"to_station":   "B",
		"from_station": "A",
		"price":        20,
	}
	first, err := CanonicalEncode(payload)
	if err != nil {
		t.Fatalf("CanonicalEncode: %v", err)
	}
	second, err := CanonicalEncode(payload)
	if err != nil {
		t.Fatalf("CanonicalEncode: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("canonical encoding not stable: %s vs %s", first, second)
	}
	want := `{"from_station":"A","price":20,"to_station":"B"}`
	if string(first) != want {
		t.Fatalf("canonical encoding = %s, want %s", first, want)
	}
}

func TestCanonicalEncodeKeepsHTMLCharactersLiteral(t *testing.T) {
	// Purchaser-supplied strings may contain &, < or >; the canonical bytes
	// must carry them literally, not as & style escapes.
	payload := map[string]any{"ticket_type": "point&click <rail>"}
	got, err := CanonicalEncode(payload)
	if err != nil {
		t.Fatalf("CanonicalEncode: %v", err)
	}
	want := `{"ticket_type":"point&click <rail>"}`
	if string(got) != want {
		t.Fatalf("canonical encoding = %s, want %s", got, want)
	}
}

func TestTicketWithHTMLCharactersVerifies(t *testing.T) {
	i := testIssuer(t)
	now := time.Now()
	req := validRequest(now)
	req.TicketType = "point&click <rail>"
	signed, err := i.Issue(req, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !i.Keys.Verify(signed.Payload, signed.Signature) {
		t.Fatalf("ticket with &, < and > in a field must verify")
	}
}
