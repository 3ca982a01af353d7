package v1

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// sanitizeValidationError returns a user-friendly message for validation/binding errors.
// Never expose raw gin/go validation errors to clients (security + UX).
func sanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	// Raw validation errors expose internal structure - return generic message
	if strings.Contains(msg, "validation") ||
		strings.Contains(msg, "Field validation") ||
		strings.Contains(msg, "cannot unmarshal") ||
		strings.Contains(msg, "bind") ||
		strings.Contains(msg, "Key:") {
		return "Invalid request"
	}
	// Short, safe messages (e.g. "invalid email") can pass through
	if len(msg) < 100 && !strings.Contains(msg, "Error:") {
		return msg
	}
	return "Invalid request"
}

// decodePhotoDataURL decodes a profile photo submitted as a base64 data URL
// ("data:image/png;base64,...."). A bare base64 string is accepted too.
// An empty input decodes to nil, which the update treats as "no photo".
func decodePhotoDataURL(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	raw := s
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, errors.New("malformed data URL")
		}
		meta := s[len("data:"):idx]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, errors.New("data URL is not base64 encoded")
		}
		raw = s[idx+1:]
	}

	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return payload, nil
}
