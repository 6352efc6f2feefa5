package server

// Server is the lifecycle contract the cmd entrypoint programs against.
// RunServer blocks until the process is told to stop; Shutdown drains
// in-flight requests and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
