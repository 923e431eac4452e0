package vehicleprediction

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with timestamps at
// microsecond precision.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
