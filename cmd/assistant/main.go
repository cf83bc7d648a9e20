// Command assistant is the Plan-Execute-Verify-Retry action assistant:
// a CLI and HTTP front end over internal/orchestrator.
package main

func main() {
	Execute()
}
