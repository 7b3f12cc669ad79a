package bindist

import "encoding/json"

// Result is a decoded BinDist API envelope. Every authenticated endpoint
// answers with {success, data, error, meta}; Result carries those fields
// plus the transport status code.
//
// Success mirrors the envelope's own flag, not the HTTP status line — the
// two can disagree, and an HTTP 200 carrying success:false is a well-formed
// application-level failure. When the body is not a JSON object at all
// (HTML error pages, proxy text), a failure envelope is synthesized with
// the raw body as the error message, so Result is uniform for every
// response the transport managed to read.
type Result struct {
	Success    bool
	StatusCode int
	Data       map[string]any
	Error      map[string]any
	Meta       map[string]any

	// Raw is the body as decoded, before any field extraction. For
	// synthesized envelopes it holds {"error": <raw body text>}.
	Raw map[string]any
}

// ErrorMessage returns the message string from the envelope's error object,
// or "" when none is present.
func (r *Result) ErrorMessage() string {
	return errorMessage(r.Error)
}

// decodeResult turns a response body into a Result. Decoding never fails:
// anything that does not parse as a JSON object becomes a synthesized
// failure envelope carrying the raw text. Malformed responses are data
// here, not errors.
func decodeResult(statusCode int, body []byte) *Result {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		text := string(body)
		return &Result{
			StatusCode: statusCode,
			Error:      map[string]any{"message": text},
			Raw:        map[string]any{"error": text},
		}
	}
	return &Result{
		Success:    boolField(envelope, "success"),
		StatusCode: statusCode,
		Data:       objectField(envelope, "data"),
		Error:      objectField(envelope, "error"),
		Meta:       objectField(envelope, "meta"),
		Raw:        envelope,
	}
}

// Field accessors for the map[string]any payloads. JSON unmarshals into
// interface values, so every read is a type assertion; absent keys and
// wrong types both yield the zero value.

func boolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func objectField(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func int64Field(m map[string]any, key string) int64 {
	// encoding/json decodes numbers in an any as float64.
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}

func errorMessage(m map[string]any) string {
	return stringField(m, "message")
}
