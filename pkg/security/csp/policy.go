// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// CSPBuilder assembles a policy one directive at a time. Directives are
// emitted in the order they were first set; setting a directive again
// replaces its sources in place.
//
//	NewCSPBuilder().DefaultSrc("'none'").FrameAncestors("'none'").Build()
//	// "default-src 'none'; frame-ancestors 'none'"
//
// A builder is not safe for concurrent use. Build the string once and share that.
type CSPBuilder struct {
	names   []string
	sources map[string][]string
}

// NewCSPBuilder returns an empty builder.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{sources: make(map[string][]string)}
}

// Directive sets an arbitrary directive. A directive with no sources is
// dropped from the built policy.
func (b *CSPBuilder) Directive(name string, sources ...string) *CSPBuilder {
	if _, ok := b.sources[name]; !ok {
		b.names = append(b.names, name)
	}
	b.sources[name] = sources
	return b
}

func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder {
	return b.Directive("default-src", sources...)
}

func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder {
	return b.Directive("script-src", sources...)
}

func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder {
	return b.Directive("style-src", sources...)
}

func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder {
	return b.Directive("img-src", sources...)
}

func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder {
	return b.Directive("font-src", sources...)
}

func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder {
	return b.Directive("connect-src", sources...)
}

func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.Directive("frame-ancestors", sources...)
}

func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder {
	return b.Directive("form-action", sources...)
}

func (b *CSPBuilder) BaseURI(sources ...string) *CSPBuilder {
	return b.Directive("base-uri", sources...)
}

func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder {
	return b.Directive("object-src", sources...)
}

// Build renders the header value, or "" when nothing is set.
func (b *CSPBuilder) Build() string {
	parts := make([]string, 0, len(b.names))
	for _, name := range b.names {
		src := b.sources[name]
		if len(src) == 0 {
			continue
		}
		parts = append(parts, name+" "+strings.Join(src, " "))
	}
	return strings.Join(parts, "; ")
}

// StrictPolicy is applied to the JSON and image endpoints. Nothing served
// there needs to load subresources or be framed.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		ImgSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// SwaggerUIPolicy allows the inline bootstrap script and the CDN assets the
// bundled Swagger UI page pulls in.
func SwaggerUIPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'", "https://cdn.jsdelivr.net").
		StyleSrc("'self'", "'unsafe-inline'", "https://cdn.jsdelivr.net").
		ImgSrc("'self'", "data:", "https:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'self'").
		ObjectSrc("'none'")
}
