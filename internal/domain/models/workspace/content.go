package workspace

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"threadline/internal/domain"
)

// ContentKind distinguishes plain text payloads from structured ones
type ContentKind string

const (
	ContentKindText       ContentKind = "text"
	ContentKindStructured ContentKind = "structured"
)

// Content is the opaque message payload. It is stored as a JSON document.
//
// Text payloads carry everything in Text. Structured payloads (tool output,
// rendered artifacts) carry an arbitrary Data document plus a Source field
// which is the only part streamed output is appended to.
type Content struct {
	Kind   ContentKind     `json:"kind" yaml:"kind"`
	Text   string          `json:"text,omitempty" yaml:"text,omitempty"`
	Source string          `json:"source,omitempty" yaml:"source,omitempty"`
	Data   json.RawMessage `json:"data,omitempty" yaml:"-"`
}

// TextContent builds a plain text payload
func TextContent(text string) Content {
	return Content{Kind: ContentKindText, Text: text}
}

// StructuredContent builds a structured payload with an initial source
func StructuredContent(source string, data json.RawMessage) Content {
	return Content{Kind: ContentKindStructured, Source: source, Data: data}
}

// Append adds delta to the appendable part of the payload
func (c *Content) Append(delta string) {
	switch c.Kind {
	case ContentKindStructured:
		c.Source += delta
	default:
		c.Kind = ContentKindText
		c.Text += delta
	}
}

// String returns the human-readable part of the payload
func (c Content) String() string {
	if c.Kind == ContentKindStructured {
		return c.Source
	}
	return c.Text
}

// Validate checks the payload kind
func (c Content) Validate() error {
	switch c.Kind {
	case ContentKindText, ContentKindStructured:
		return nil
	default:
		return fmt.Errorf("unknown content kind %q", c.Kind)
	}
}

// Value implements driver.Valuer
func (c Content) Value() (driver.Value, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Corrupt payloads surface as
// domain.PayloadDecodeError.
func (c *Content) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		return &domain.PayloadDecodeError{Err: fmt.Errorf("content is NULL")}
	default:
		return &domain.PayloadDecodeError{Err: fmt.Errorf("unsupported content column type %T", src)}
	}

	var decoded Content
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return &domain.PayloadDecodeError{Err: err}
	}
	if err := decoded.Validate(); err != nil {
		return &domain.PayloadDecodeError{Err: err}
	}
	*c = decoded
	return nil
}
