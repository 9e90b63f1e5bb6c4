package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // App secret for signature verification
	VerifyToken     string   // Token for the Meta subscription handshake
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute
}
