// Package kernel registers passes, frontends and backends and runs them from
// the command language.
//
// A Kernel owns one design and the per-session state around it: the echo
// flag, the stack of scripts being read and the last here-document. The
// Registry it dispatches through is built once at startup and is read-only
// afterwards, so several kernels may share it.
package kernel
