package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds the client network details captured by the middleware
// and recorded with every usage event.
type RequestMeta struct {
	Host      string
	Port      int
	UserAgent string
}

// ContextWithRequestMeta adds request metadata to the context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from the context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
