package api

import (
	"github.com/okian/blackjack/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithAddr sets the listen address reported by GET /.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithAllowedOrigins sets the CORS origins. "*" allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = append([]string(nil), origins...)
		}
	}
}

// WithGzip enables or disables response compression.
func WithGzip(enabled bool) Option {
	return func(s *Server) {
		s.gzipEnabled = enabled
	}
}

// WithGzipMinSize sets the smallest body, in bytes, that gets compressed.
func WithGzipMinSize(n int) Option {
	return func(s *Server) {
		if n >= 0 {
			s.gzipMinSize = n
		}
	}
}

// WithLogger sets a custom logger for the API.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
