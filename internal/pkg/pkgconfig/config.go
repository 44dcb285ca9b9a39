package pkgconfig

// Config is the read-only configuration surface the application depends on.
//
// Concrete implementations (Viper) decide where values come from; business
// code only asks for typed keys.
type Config interface {
	GetString(key string) string
	GetInt(key string) int64
	GetBool(key string) bool
	Close() error
}
