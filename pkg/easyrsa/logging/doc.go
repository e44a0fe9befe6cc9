// Package logging is the structured logging facade used across easyrsa.
//
// Components accept a [Logger] rather than a concrete *slog.Logger so tests
// and applications can substitute their own sink. [New] adapts a
// *slog.Logger (nil means slog.Default()), [Discard] drops everything and is
// the default for library code.
//
// Key material must never reach a log line. Use [Redacted] to record that a
// value was deliberately left out and [BitLen] to record only the size of a
// big integer:
//
//	logger.Debug(ctx, "key pair derived",
//	    logging.BitLen("modulus_bits", n),
//	    logging.Redacted("d"),
//	)
package logging
