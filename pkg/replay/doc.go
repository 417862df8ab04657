// Package replay feeds a recorded trace of upstream events into a tracker.
package replay
