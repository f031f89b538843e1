// Package shutdown coordinates graceful process termination.
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("web server", srv.Shutdown)
//	err := h.Wait(ctx) // returns after SIGINT/SIGTERM, Trigger or ctx end
package shutdown
