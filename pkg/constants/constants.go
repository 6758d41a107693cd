package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	EnvPrefix = "LIBREMEDIC"

	ServiceName = "libremedic_admin"

	DefaultAPIBaseURL = "http://localhost:5001/api"
)
