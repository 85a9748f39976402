package redis

// Config holds the Redis stream topology for one consumer: where requests
// come from and where results go.
type Config struct {
	Addr         string
	Password     string
	Stream       string
	Group        string
	ConsumerName string
	ResultStream string
}

func NewConfig(addr, password, stream, group, consumerName, resultStream string) *Config {
	return &Config{
		Addr:         addr,
		Password:     password,
		Stream:       stream,
		Group:        group,
		ConsumerName: consumerName,
		ResultStream: resultStream,
	}
}
