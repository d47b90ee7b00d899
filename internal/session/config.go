package session

// Config is the per-session endpoint configuration. Both fields are non-empty
// once collected.
type Config struct {
	APIKey string
	Model  string
}

// Reconfigure returns c with each non-empty argument replacing its field.
// Empty arguments keep the current value.
func (c Config) Reconfigure(apiKey, model string) Config {
	if apiKey != "" {
		c.APIKey = apiKey
	}
	if model != "" {
		c.Model = model
	}
	return c
}
