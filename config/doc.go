// Package config builds live logging state from declarative
// configuration documents.
//
// A document is JSON or YAML with five sections: formatters define
// line patterns, handlers define sinks (console streams and rotating
// files), loggers bind channels to sinks with a threshold and a
// propagation flag, root configures the root channel, and
// disable_existing_loggers controls what happens to channels the
// document does not name.
//
//	{
//	  "version": 1,
//	  "formatters": {
//	    "default": {"format": "%(asctime)s - %(name)s - %(levelname)s: %(message)s"}
//	  },
//	  "handlers": {
//	    "console": {"class": "logging.StreamHandler", "level": "INFO",
//	                "formatter": "default", "stream": "ext://sys.stdout"},
//	    "file_handler": {"class": "logging.handlers.RotatingFileHandler", "level": "INFO",
//	                     "formatter": "default", "filename": "elisa.log",
//	                     "maxBytes": 10485760, "backupCount": 10, "encoding": "utf8"}
//	  },
//	  "loggers": {
//	    "observer.observer": {"level": "INFO", "handlers": ["console"], "propagate": 0}
//	  },
//	  "root": {"level": "INFO", "handlers": ["file_handler"]}
//	}
//
// Configuration moves through three stages. Parse (or ParseYAML,
// LoadFile, LoadSchema) decodes the document strictly, rejecting
// unknown keys. Resolve validates it and compiles a RoutingTable:
// levels parsed, sink classes mapped, formatter patterns compiled,
// every cross reference checked. Apply installs the table on a
// registry, opening sinks and binding channels. The first two stages
// have no side effects, so a table can be validated long before any
// file is touched.
//
// Validation collects every defect instead of stopping at the first.
// The returned error combines one *ConfigError per problem, each
// carrying the document path it was found at:
//
//	_, err := config.Parse(data)
//	for _, defect := range config.Defects(err) {
//	    fmt.Println(defect)
//	}
//
// Setup is the usual entry point for a process: it reads the
// ELISA_LOG_* environment variables, picks a file or an embedded
// schema, and configures the given registry in one call.
package config
