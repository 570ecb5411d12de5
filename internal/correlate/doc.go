// Package correlate tracks in-flight commands and routes plugin replies
// back to their issuers.
//
// Every command gets a ULID correlation id and a pending-table entry.
// An entry resolves exactly once: whichever of {matching reply, timeout,
// caller cancellation, connection loss} removes the entry from the table
// first delivers the outcome; everything after that is a logged no-op.
package correlate
