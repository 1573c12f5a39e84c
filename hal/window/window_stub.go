//go:build !cgo

package window

import "lumen/hal"

type Config struct {
	Width  int
	Height int
	Scale  int
	TPS    int
	Title  string
}

func Run(newApp hal.NewAppFunc, cfg Config) error {
	return hal.ErrNotImplemented
}
