package linefold

// NonBreakingSpace is the default marker character rendered as a
// literal space that never becomes a break point.
const NonBreakingSpace = '·'

// Option configures a Writer.
type Option func(*writerConfig)

type writerConfig struct {
	marker rune
	width  func(string) int
}

// WithNonBreakingMarker replaces the non-breaking-space marker rune.
func WithNonBreakingMarker(r rune) Option {
	return func(cfg *writerConfig) {
		if r != 0 {
			cfg.marker = r
		}
	}
}

// WithWidthFunc replaces column measurement. The default measures
// printable rune width, skipping ANSI escape sequences.
func WithWidthFunc(fn func(string) int) Option {
	return func(cfg *writerConfig) {
		if fn != nil {
			cfg.width = fn
		}
	}
}
