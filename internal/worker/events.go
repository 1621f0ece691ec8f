package worker

// RefreshRequest asks for a wholesale rebuild of one knowledge domain.
type RefreshRequest struct {
	Domain        string `json:"domain"`
	CorrelationID string `json:"correlation_id"`
}
