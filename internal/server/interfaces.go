package server

// Server is the lifecycle contract for a transport server. RunServer blocks
// until shutdown is requested; Shutdown drains and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
