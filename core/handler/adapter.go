package handler

import "net/http"

// ToHTTP converts a handler chain into a standard http.Handler.
// The factory creates a fresh context per request; errHandler receives
// rendering errors and nil responses. It lets the middleware chain plug into
// any router or server without depending on a particular framework.
func ToHTTP[C Context](
	h HandlerFunc[C],
	factory func(w http.ResponseWriter, r *http.Request) C,
	errHandler ErrorHandler[C],
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := factory(w, r)

		resp := h(ctx)
		if resp == nil {
			if errHandler != nil {
				errHandler(ctx, ErrNilResponse)
			}
			return
		}

		if err := resp(w, r); err != nil && errHandler != nil {
			errHandler(ctx, err)
		}
	})
}
