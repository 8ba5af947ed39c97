package config

import "os"

func IsDebug() bool {
	return os.Getenv("LIFEOS_DEBUG") == "1"
}
