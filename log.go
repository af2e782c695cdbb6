package main

import (
	"log"
	"time"
)

// debug is set once from the command line before playback starts.
var debug bool

func trackTime(start time.Time, name string) {
	if !debug {
		return
	}
	log.Printf("event=%s duration=%s", name, time.Since(start))
}

func debugf(format string, args ...interface{}) {
	if debug {
		log.Printf(format, args...)
	}
}
