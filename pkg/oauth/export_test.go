package oauth

// WithSkipSignatureCheck lets tests feed unsigned id_tokens through the verifier.
func WithSkipSignatureCheck() Option {
	return func(o *options) {
		o.skipSignatureCheck = true
	}
}
