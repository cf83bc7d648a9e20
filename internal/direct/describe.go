package direct

import "strings"

// describeExecution produces a short semantic label for an
// ExecutionMemory record, grounded on DirectExecutor._generate_description.
func describeExecution(userRequest string) string {
	lower := strings.ToLower(userRequest)

	switch {
	case strings.Contains(lower, "file") || strings.Contains(lower, "count"):
		return "File " + userRequest
	case strings.Contains(lower, "web") || strings.Contains(lower, "scrape") || strings.Contains(lower, "download"):
		return "Web scraper"
	case strings.Contains(lower, "api"):
		return "API client"
	case strings.Contains(lower, "data") || strings.Contains(lower, "process"):
		return "Data processing script"
	case strings.Contains(lower, "gui") || strings.Contains(lower, "window") || strings.Contains(lower, "interface"):
		return "GUI application"
	case strings.Contains(lower, "sort") || strings.Contains(lower, "filter"):
		return "Data manipulation script"
	case strings.Contains(lower, "convert") || strings.Contains(lower, "transform"):
		return "Data conversion script"
	case strings.Contains(lower, "backup") || strings.Contains(lower, "copy"):
		return "File backup script"
	}

	if len(userRequest) > 50 {
		return "Python script: " + userRequest[:50]
	}
	return "Python script: " + userRequest
}
