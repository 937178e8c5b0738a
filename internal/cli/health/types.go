// Package health provides shared types for health check responses.
package health

// Response represents the endpoint health response structure.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Mounts    int    `json:"mounts"`
}
