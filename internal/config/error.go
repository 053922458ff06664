package config

// ConfigInitError reports a config that must be completed with the init
// command before other commands can run.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
