// Package logger provides a thin factory around log/slog with functional
// options, attribute helpers for the data source domain, context injection
// and masking of sensitive attributes.
//
// New wraps the text or JSON handler in LogHandlerDecorator, which runs
// registered ContextExtractor callbacks and replaces the value of any
// attribute whose key is in the redaction set (DefaultRedactKeys unless
// WithRedactKeys says otherwise) with Redacted. Masking also applies inside
// groups and to values produced by slog.LogValuer, so a credential that
// logs itself as a group keeps its password out of the output.
//
// # Usage
//
//	log := logger.New(
//		logger.WithDevelopment("dsctl"),
//		logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "client pool created",
//		logger.Component("clientpool"),
//		logger.Duration(time.Since(start)),
//	)
//
// Config and FromConfig map LOG_LEVEL, LOG_FORMAT and LOG_SERVICE from the
// environment onto options.
package logger
