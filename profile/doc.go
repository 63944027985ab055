// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper]. With it, the supported modes are allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace, and [net/http/pprof]
// handlers are registered on the default mux.
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithDir(dir))
//	defer p.Start().Stop()
//
// Profiles are written to the configured directory as <mode>.pprof and can be
// inspected with go tool pprof:
//
//	go tool pprof -http=: worldc cpu.pprof
package profile
