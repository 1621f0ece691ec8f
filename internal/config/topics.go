package config

// NSQ topics used by the refresh worker.
const (
	TopicKnowledgeRefresh = "knowledge.refresh"
)
