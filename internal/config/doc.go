// Package config defines runtime settings used by the alarm binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the state file path, the snooze duration and the
// log level. Every setting has a default, so the binaries run without a
// settings file at all.
package config
