// Package workers runs the application's background jobs.
package workers

// Worker is a background job. Run starts it; implementations either block or
// spawn their own goroutine.
type Worker interface {
	Run()
}
