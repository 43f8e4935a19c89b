// Package profile provides optional runtime profiling for espr.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof -o espr .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op, so
// callers never need their own build constraints.
//
// # Modes
//
// With the tag, the following modes are available through [Modes]:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/espr"}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode (cpu.pprof,
// mem.pprof, ...). Legalizing a large schema set with --concurrency is the
// usual reason to reach for this:
//
//	espr --pprof-mode=cpu --concurrency=8 ir schemas/*.exp
//	go tool pprof -http=: ~/.cache/espr/pprof/cpu.pprof
//
// The pprof build also imports [net/http/pprof], registering its handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
