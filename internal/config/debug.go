package config

import "os"

func IsDebug() bool {
	return os.Getenv("SPARROW_DEBUG") == "1"
}
