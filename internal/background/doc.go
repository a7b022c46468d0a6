// Package background runs fire-and-forget work scheduled by request
// handlers after their response has been produced.
//
// Tasks are submitted through a buffered channel with non-blocking
// semantics, so scheduling never delays a response. Nothing about a task's
// outcome is reported: results and errors are discarded and panics are recovered.
//
//	queue := background.NewQueue(64, 1, logger)
//	queue.Start(ctx)
//
//	queue.WaitUntil(func(ctx context.Context) (any, error) {
//		return "done", nil
//	})
//
// On shutdown the workers drain the remaining buffer before exiting; Wait
// bounds how long the caller is willing to block for that.
package background
