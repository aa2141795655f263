// Package middlewares provides net/http middleware for mounting a Google
// authentication strategy. Every middleware has the standard
// func(http.Handler) http.Handler shape and works with chi or a plain mux.
//
// # Authenticate
//
// Authenticate runs the strategy and applies its outcome. Mount it on both
// the login route and the callback route:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID(), middlewares.Recover())
//
//	auth := middlewares.Authenticate(strategy,
//	    middlewares.WithFailureRedirect("/login"),
//	    middlewares.WithAuthenticateOptions(googleauth.WithAccessType("offline")),
//	)
//	r.With(auth).Get("/auth/google", nil)
//	r.With(auth).Get("/auth/google/callback", func(w http.ResponseWriter, r *http.Request) {
//	    user, _ := middlewares.UserFromContext[*User](r.Context())
//	    // start a session for user
//	})
//
// The login route never reaches its handler: with no code and no error in
// the query the strategy always redirects.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates a new UUID.
// Use RequestIDExtractor() with logger.New for automatic request_id in all logs:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover catches panics in downstream handlers, logs them and responds
// with 500 or a custom handler:
//
//	r.Use(middlewares.Recover(
//	    middlewares.WithRecoverLogger(log),
//	    middlewares.WithRecoverHandler(func(w http.ResponseWriter, r *http.Request, pe *middlewares.PanicError) {
//	        http.Error(w, "something went wrong", http.StatusInternalServerError)
//	    }),
//	))
//
// Panics inside the verify callback never reach Recover: the strategy
// recovers them itself and reports an Error outcome.
package middlewares
