package configs

// Otel configures OpenTelemetry trace export. Tracing is off unless both
// Enabled is true and Endpoint is set.
type Otel struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	Endpoint    string `env:"ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"mesa-console"`
}
