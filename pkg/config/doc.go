// Package config loads progcheck configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variables prefixed with PROGCHECK_ (for example
// PROGCHECK_SITEDIR or PROGCHECK_LOG_LEVEL). The result is validated with
// struct tags before use.
//
// A configuration file looks like:
//
//	site_dir: /srv/conference
//	data_dir: _data
//	logging:
//	  level: debug
//	  format: json
//	metrics:
//	  listen_address: ":9090"
//	history:
//	  path: /var/lib/progcheck/history.db
//	watch:
//	  debounce: 1s
//	schema:
//	  person.email: text
//	  talk.speaker: text
package config
