package binder_test

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/bindconv/binder"
)

func ExampleBindYAML() {
	type Config struct {
		Host    string        `bind:"host"`
		Port    int           `bind:"port"`
		Timeout time.Duration `bind:"timeout"`
		Tags    []string      `bind:"tags"`
	}

	data := []byte(`
host: localhost
port: 8080
timeout: PT30S
tags: a, b
`)

	var cfg Config
	if err := binder.BindYAML(data, &cfg); err != nil {
		fmt.Println("bind:", err)
		return
	}

	fmt.Println(cfg.Host, cfg.Port, cfg.Timeout, cfg.Tags)
	// Output: localhost 8080 30s [a b]
}
