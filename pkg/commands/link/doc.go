// Package link implements the media link operation: every file of the
// source instance's working directory that is missing or older at the
// target instance is replaced there by a symlink to the source file.
//
// The pipeline is:
//
//	gate -> resolve -> normalize -> same host -> build routine -> execute
//
// Each stage aborts the operation with a coded error from pkg/errors. The
// routine itself runs in a single shell invocation on the shared host.
package link
