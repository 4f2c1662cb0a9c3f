// Package logger builds slog loggers with environment defaults and
// attributes pulled from the request context.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "formlab"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "user created", logger.UserID(id), logger.Duration(elapsed))
//
// Attribute helpers keep key names consistent. Error and UserID return an
// empty attribute for nil input, which slog drops.
package logger
