// Package logbook is a category-based logging facade with a bounded,
// FIFO-pruned file store and pluggable destinations.
//
// Key features
//   - Named category loggers bound to a subsystem via an explicit Registry
//   - Polymorphic destinations (console, bounded file store, rolling file,
//     Kafka, user-defined) each owning its own level filter
//   - FileDestination: durable append-only store capped at maxMessages
//     lines, oldest-first eviction, atomic replace, all I/O serialized on a
//     single worker so concurrent loggers never interleave writes
//   - Typed, immutable Metadata with deterministic (sorted-key) text and
//     JSON rendering
//   - Best-effort delivery throughout: a logging call never panics and
//     never surfaces an I/O error to the call site
//
// Typical usage
//
//	reg, err := logbook.NewRegistry("com.example.app",
//		logbook.NewConsoleDestination(logbook.AllLevels()),
//		fileDest,
//	)
//	if err != nil { panic(err) }
//	defer reg.Close()
//
//	network := reg.Category("network")
//	network.Info("connected", logbook.NewBuilder().Str("host", host).Build())
package logbook
