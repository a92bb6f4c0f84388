package logbook

import "time"

const (
	// defaultMaxMessages is the line cap applied to a FileDestination when
	// the configuration leaves MaxMessages unset.
	defaultMaxMessages = 800

	// defaultCloseTimeout bounds how long Close waits for queued file
	// operations to drain.
	defaultCloseTimeout = 5 * time.Second

	// fileTimeLayout is locale-stable and sorts lexicographically.
	fileTimeLayout = "2006-01-02 15:04:05.000"

	logFileExt  = ".log"
	emptyString = ""
)

const (
	errMsgNilConfig       = "Config is nil."
	errMsgConfigInvalid   = "Configuration is invalid."
	errMsgEmptySubsystem  = "Subsystem has not been set."
	errMsgClosed          = "Destination is closed."
	errMsgCloseTimeout    = "Close timed out waiting for queued operations."
	errMsgUnknownLevel    = "Unknown log level."
	errMsgUnknownDestType = "Unknown destination type."
	errMsgMissingFileDir  = "File destination requires a directory."
	errMsgMissingBaseName = "File destination requires a base name."
	errMsgMissingBrokers  = "Kafka destination requires at least one broker."
	errMsgMissingTopic    = "Kafka destination requires a topic."
)
