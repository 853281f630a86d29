// Package alarms implements persistence for the alarm list.
//
// The FileRepository stores and loads the whole list as a JSON array on
// disk and exposes a Repository interface that the lifecycle manager
// depends on. Missing and corrupt files map to sentinel errors the
// manager recovers from.
package alarms
