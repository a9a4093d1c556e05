package gmail

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// header returns the value of the named header, or "".
func header(payload *gmail.MessagePart, name string) string {
	if payload == nil {
		return ""
	}
	for _, h := range payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// extractBody returns the decoded message body: the payload's own data if
// present, else the first text/plain or text/html part found depth first.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBase64URL(payload.Body.Data)
	}
	for _, part := range payload.Parts {
		if (part.MimeType == "text/plain" || part.MimeType == "text/html") && part.Body != nil && part.Body.Data != "" {
			return decodeBase64URL(part.Body.Data)
		}
		if strings.HasPrefix(part.MimeType, "multipart/") {
			if body := extractBody(part); body != "" {
				return body
			}
		}
	}
	return ""
}

// decodeBase64URL decodes Gmail's base64url data, padded or not.
func decodeBase64URL(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}

// ErrHeaderInjection is returned when a header value contains a line break.
var ErrHeaderInjection = errors.New("header value must not contain line breaks")

// buildRaw renders an RFC 822 message encoded as base64url, the format the
// send endpoint expects.
func buildRaw(msg *OutgoingMessage) (string, error) {
	headers := []struct{ name, value string }{
		{"To", msg.To},
		{"Cc", msg.Cc},
		{"Bcc", msg.Bcc},
		{"Subject", msg.Subject},
	}
	for _, h := range headers {
		if strings.ContainsAny(h.value, "\r\n") {
			return "", fmt.Errorf("invalid %s: %w", h.name, ErrHeaderInjection)
		}
	}

	var b strings.Builder
	writeHeader := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}

	writeHeader("To", msg.To)
	writeHeader("Cc", msg.Cc)
	writeHeader("Bcc", msg.Bcc)
	writeHeader("Subject", encodeRFC2047(msg.Subject))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

// encodeRFC2047 encodes non-ASCII header values.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
