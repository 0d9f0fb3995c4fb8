// Package logger builds structured loggers on top of log/slog and provides
// attribute helpers for the fields this service logs.
//
//	log := logger.New(
//		logger.WithDevelopment("landing"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("server started", logger.Component("server"), logger.Address(addr))
//
// WithDevelopment writes text at debug level; WithProduction writes JSON at info
// level. Both tag records with the service name and environment.
//
// Request-scoped values can be attached automatically with context extractors:
//
//	log := logger.New(logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//		id := middleware.GetRequestID(ctx)
//		return logger.RequestID(id), id != ""
//	}))
//	log.InfoContext(ctx, "handled")
package logger
