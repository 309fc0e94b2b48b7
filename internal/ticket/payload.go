package ticket

import (
	"bytes"
	"encoding/json"
)

// Price is the flat price of a single-leg ticket.  Payment handling lives
// outside this service, so the price is a constant baked into the payload.
const Price = 20

// CanonicalEncode serializes a payload into the exact byte form that is
// signed and verified: compact JSON with lexicographically sorted keys, no
// insignificant whitespace and no HTML escaping, so `&`, `<` and `>` in
// payload strings stay literal.  encoding/json writes map keys in sorted
// order, which makes the encoding a pure function of the payload's keys
// and values.  Any field added, removed, renamed or retyped changes these
// bytes and therefore invalidates an existing signature.
func CanonicalEncode(payload map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	// Encode terminates the stream with a newline that is not part of the
	// canonical bytes.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Signed is an issued ticket: the payload together with the base64
// signature over its canonical encoding.  Tickets are bearer-signed and
// never persisted server-side; validity is proven by the signature alone.
type Signed struct {
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`
}
