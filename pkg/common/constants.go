package common

const (
	RedisStreamTickerSync = "sentiment.ticker.sync"

	RedisStreamGroup    = "sentiment-executor-group"
	RedisStreamConsumer = "sentiment-executor-consumer"

	// RedisStreamPayloadField is the stream entry field holding the JSON task.
	RedisStreamPayloadField = "payload"
)
