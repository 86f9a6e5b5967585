package model

// GuildConfig holds the per-guild execution settings.
type GuildConfig struct {
	ExecutionChannelID string `json:"executionChannelId"`
}

// ExecutionRecord describes a single execution post. Timestamp is Unix
// milliseconds so data files written by earlier deployments keep parsing.
type ExecutionRecord struct {
	ExecutorID     string `json:"executorId"`
	ExecutedUserID string `json:"executedUserId"`
	ChannelID      string `json:"channelId"`
	Timestamp      int64  `json:"timestamp"`
}
