// Package dataset loads the people, program and sessions datasets from YAML
// files into the value model checked by package integrity.
//
// Loading failures (missing files, malformed YAML) are reported as
// *LoadError and are never violations: a dataset that cannot be read is an
// operational problem, not invalid data.
package dataset
