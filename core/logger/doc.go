// Package logger holds the kernel log sink that commands write their
// human-readable output to, and a standardized event log recording which
// commands ran in each session.
package logger
