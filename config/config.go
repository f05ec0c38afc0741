package config

// AppConfig holds the application configuration
type AppConfig struct {
	DataPath    string
	BearerToken string
	Port        string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
